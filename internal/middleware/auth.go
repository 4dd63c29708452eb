package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/constants"
	apierrors "github.com/habitfam/family-habits-api/internal/errors"
	"github.com/habitfam/family-habits-api/internal/identity"
)

// RequireAuth verifies the bearer credential and stores the verified
// identity in the request context.
func RequireAuth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Missing Authorization header")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			apierrors.Unauthorized(c, "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		id, err := verifier.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid credential")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeySubject, id.Subject)
		c.Set(constants.ContextKeyEmail, id.Email)
		c.Set(constants.ContextKeyName, id.Name)
		c.Next()
	}
}

// GetSubject retrieves the verified subject identifier from context.
func GetSubject(c *gin.Context) (string, bool) {
	subject, exists := c.Get(constants.ContextKeySubject)
	if !exists {
		return "", false
	}
	s, ok := subject.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// GetIdentity retrieves the full verified identity from context.
func GetIdentity(c *gin.Context) (identity.Identity, bool) {
	subject, ok := GetSubject(c)
	if !ok {
		return identity.Identity{}, false
	}
	email, _ := c.Get(constants.ContextKeyEmail)
	name, _ := c.Get(constants.ContextKeyName)

	id := identity.Identity{Subject: subject}
	if s, ok := email.(string); ok {
		id.Email = s
	}
	if s, ok := name.(string); ok {
		id.Name = s
	}
	return id, true
}
