package handlers

import (
	"net/http"

	"hirehub/internal/auth"
	"hirehub/internal/server/middleware"

	"github.com/gin-gonic/gin"
)

type signupForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required,oneof=candidate recruiter"`
}

// SignUp handles the multipart signup form: profile picture plus account
// fields. The picture upload happens before account creation, so a failed
// upload never produces an account.
func (h *Handler) SignUp(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		h.bindError(c, err)
		return
	}

	fileHeader, ok := h.formFile(c, "profile_pic")
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.serviceError(c, err)
		return
	}
	defer file.Close()

	user, token, err := h.auth.SignUp(c.Request.Context(), auth.SignUpInput{
		Name:       form.Name,
		Email:      form.Email,
		Password:   form.Password,
		ProfilePic: file,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	user, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token := middleware.Token(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	if err := h.auth.SignOut(c.Request.Context(), token); err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the current user and role, the session lookup the client runs
// at startup and after every auth change.
func (h *Handler) Me(c *gin.Context) {
	identity := middleware.Identity(c)

	c.JSON(http.StatusOK, gin.H{
		"user": identity.User,
		"role": identity.Role,
	})
}

// SetRole records the onboarding choice.
func (h *Handler) SetRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	identity := middleware.Identity(c)

	if err := h.auth.SetRole(c.Request.Context(), identity.User.ID, req.Role); err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": req.Role})
}
