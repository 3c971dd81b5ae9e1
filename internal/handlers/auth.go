package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nanotasks/internal/auth"
	"nanotasks/internal/models"
	"nanotasks/internal/services"
)

// AuthHandler handles sign-in: first-sign-in upsert plus token issuance.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Token upserts the user and issues a JWT carrying their email and role.
// The role on the token always comes from the stored user, never from the
// request.
// POST /auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, created, err := h.userService.Upsert(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	token, err := auth.GenerateToken(user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile.
// GET /api/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), principal.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
