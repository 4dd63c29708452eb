package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/identity"
	"github.com/stretchr/testify/require"
)

type fixedVerifier struct {
	identity identity.Identity
	err      error
}

func (v fixedVerifier) Verify(string) (*identity.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	id := v.identity
	return &id, nil
}

func authRouter(verifier identity.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(verifier), func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": id.Subject, "email": id.Email})
	})
	return r
}

func TestRequireAuth_PassesIdentity(t *testing.T) {
	r := authRouter(fixedVerifier{identity: identity.Identity{
		Subject: "subject-123",
		Email:   "user@example.com",
	}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "subject-123")
	require.Contains(t, w.Body.String(), "user@example.com")
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := authRouter(fixedVerifier{identity: identity.Identity{Subject: "subject-123"}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	r := authRouter(fixedVerifier{identity: identity.Identity{Subject: "subject-123"}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := authRouter(fixedVerifier{err: identity.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
