package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hirehub/internal/auth"
	"hirehub/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubResolver struct {
	identities map[string]*auth.Identity
}

func (s *stubResolver) CurrentUser(ctx context.Context, token string) (*auth.Identity, error) {
	identity, ok := s.identities[token]
	if !ok {
		return nil, auth.ErrNoSession
	}
	return identity, nil
}

func newRouter(resolver SessionResolver, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(resolver, zap.NewNop()))
	handlers := []gin.HandlerFunc{}
	if guard != nil {
		handlers = append(handlers, guard)
	}
	handlers = append(handlers, func(c *gin.Context) {
		identity := Identity(c)
		if identity == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": identity.User.ID, "role": identity.Role})
	})
	r.GET("/whoami", handlers...)
	return r
}

func testResolver() *stubResolver {
	return &stubResolver{identities: map[string]*auth.Identity{
		"cand-token": {User: &models.User{ID: "cand-1"}, Role: models.RoleCandidate},
		"rec-token":  {User: &models.User{ID: "rec-1"}, Role: models.RoleRecruiter},
		"new-token":  {User: &models.User{ID: "new-1"}, Role: ""},
	}}
}

func TestSession_BearerToken(t *testing.T) {
	r := newRouter(testResolver(), nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer cand-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"user":"cand-1"`) {
		t.Errorf("body = %s, want resolved cand-1", body)
	}
}

func TestSession_CookieFallback(t *testing.T) {
	r := newRouter(testResolver(), nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "rec-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if body := w.Body.String(); !strings.Contains(body, `"user":"rec-1"`) {
		t.Errorf("body = %s, want resolved rec-1", body)
	}
}

func TestSession_UnknownTokenIsAnonymous(t *testing.T) {
	r := newRouter(testResolver(), nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"user":null`) {
		t.Errorf("body = %s, want anonymous", body)
	}
}

func TestGuards(t *testing.T) {
	cases := []struct {
		name       string
		guard      gin.HandlerFunc
		token      string
		wantStatus int
	}{
		{"auth rejects anonymous", RequireAuth(), "", http.StatusUnauthorized},
		{"auth admits candidate", RequireAuth(), "cand-token", http.StatusOK},
		{"recruiter rejects anonymous", RequireRecruiter(), "", http.StatusUnauthorized},
		{"recruiter rejects candidate", RequireRecruiter(), "cand-token", http.StatusForbidden},
		{"recruiter admits recruiter", RequireRecruiter(), "rec-token", http.StatusOK},
		{"candidate rejects anonymous", RequireCandidate(), "", http.StatusUnauthorized},
		{"candidate rejects recruiter", RequireCandidate(), "rec-token", http.StatusForbidden},
		{"candidate admits candidate", RequireCandidate(), "cand-token", http.StatusOK},
		{"candidate admits unonboarded", RequireCandidate(), "new-token", http.StatusOK},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRouter(testResolver(), c.guard)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if c.token != "" {
				req.Header.Set("Authorization", "Bearer "+c.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != c.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, c.wantStatus)
			}
		})
	}
}
