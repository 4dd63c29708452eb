package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/dto"
	apierrors "github.com/habitfam/family-habits-api/internal/errors"
	"github.com/habitfam/family-habits-api/internal/middleware"
	"github.com/habitfam/family-habits-api/internal/services"
)

// AuthHandler resolves verified identities to application users.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Authenticate resolves the bearer subject to a user, creating the record
// on first contact.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.ResolveOrCreate(id.Subject, id.Email, id.Name)
	if err != nil {
		apierrors.InternalError(c, "Failed to resolve user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// Me returns the user for the bearer subject.
func (h *AuthHandler) Me(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(subject)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
