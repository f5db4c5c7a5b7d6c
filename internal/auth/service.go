// Package auth owns accounts, sessions and the current user's role.
// Sessions are opaque tokens in Redis; the role is cached there too, so
// every consumer reads one source of truth instead of re-querying the
// profile table per request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"hirehub/internal/models"
	"hirehub/internal/storage/blob"
	"hirehub/internal/storage/postgres"
	"hirehub/internal/storage/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoSession          = errors.New("no active session")
)

type Service struct {
	store      *postgres.Store
	cache      *redis.Cache
	blobs      *blob.Store
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(store *postgres.Store, cache *redis.Cache, blobs *blob.Store, sessionTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		cache:      cache,
		blobs:      blobs,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

type SignUpInput struct {
	Name       string
	Email      string
	Password   string
	ProfilePic io.Reader
}

// Identity is the session-resolved caller: the user row plus the role, or
// an empty role when onboarding has not happened yet.
type Identity struct {
	User *models.User
	Role string
}

func (id *Identity) IsRecruiter() bool {
	return id.Role == models.RoleRecruiter
}

// SignUp uploads the profile picture first, then creates the account. A
// picture that fails to store means no account; an account insert that
// fails deletes the stored picture again.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	picName := blob.ProfilePicName(in.Name)
	picURL, err := s.blobs.Save(blob.BucketProfilePics, picName, in.ProfilePic)
	if err != nil {
		return nil, "", fmt.Errorf("store profile picture: %w", err)
	}

	user := &models.User{
		ID:            uuid.NewString(),
		Email:         in.Email,
		PasswordHash:  string(hash),
		Name:          in.Name,
		ProfilePicURL: &picURL,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		// account creation failed, don't keep the orphaned picture
		if delErr := s.blobs.Delete(blob.BucketProfilePics, picName); delErr != nil {
			s.logger.Warn("failed to clean up profile picture",
				zap.String("name", picName),
				zap.Error(delErr),
			)
		}
		if errors.Is(err, postgres.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user signed in", zap.String("user_id", user.ID))

	return user, token, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	session, err := s.cache.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, redis.ErrCacheMiss) {
			return ErrNoSession
		}
		return err
	}

	// clear the cached role together with the session
	if err := s.cache.InvalidateRole(ctx, session.UserID); err != nil {
		s.logger.Warn("failed to invalidate cached role",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
	}

	return s.cache.DeleteSession(ctx, token)
}

// CurrentUser resolves the session token to the user and role.
func (s *Service) CurrentUser(ctx context.Context, token string) (*Identity, error) {
	session, err := s.cache.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, redis.ErrCacheMiss) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	role, err := s.Role(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Identity{User: user, Role: role}, nil
}

// Role returns the user's role, from cache when warm, from the profile
// table on a miss. An empty role means the user has not onboarded.
func (s *Service) Role(ctx context.Context, userID string) (string, error) {
	role, err := s.cache.GetRole(ctx, userID)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		s.logger.Warn("role cache read failed, falling back to store",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", nil
	}

	if err := s.cache.SetRole(ctx, userID, profile.Role); err != nil {
		s.logger.Warn("failed to cache role",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	return profile.Role, nil
}

// SetRole records the onboarding choice and refreshes the cached copy.
func (s *Service) SetRole(ctx context.Context, userID, role string) error {
	if !models.IsValidRole(role) {
		return fmt.Errorf("invalid role: %s", role)
	}

	if err := s.store.UpsertProfile(ctx, userID, role); err != nil {
		return err
	}

	if err := s.cache.SetRole(ctx, userID, role); err != nil {
		s.logger.Warn("failed to cache role after onboarding",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	return nil
}

func (s *Service) openSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	session := &redis.Session{
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := s.cache.SetSession(ctx, token, session, s.sessionTTL); err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}

	return token, nil
}
