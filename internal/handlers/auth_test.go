package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/database"
	"github.com/habitfam/family-habits-api/internal/dto"
	"github.com/habitfam/family-habits-api/internal/identity"
	"github.com/habitfam/family-habits-api/internal/middleware"
	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/repository"
	"github.com/habitfam/family-habits-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubVerifier maps fixed tokens to identities, standing in for the
// external identity provider.
type stubVerifier struct {
	identities map[string]identity.Identity
}

func (v stubVerifier) Verify(token string) (*identity.Identity, error) {
	id, ok := v.identities[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return &id, nil
}

type authTestEnv struct {
	db       *gorm.DB
	handler  *AuthHandler
	verifier stubVerifier
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Family{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:      db,
		handler: handler,
		verifier: stubVerifier{
			identities: map[string]identity.Identity{
				"alice-token": {Subject: "subject-alice", Email: "alice@example.com", Name: "Alice"},
			},
		},
	}
}

func (env authTestEnv) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", middleware.RequireAuth(env.verifier))
	api.POST("/auth", env.handler.Authenticate)
	api.GET("/auth/me", env.handler.Me)
	return r
}

func TestAuthHandler_Authenticate_CreatesUserOnFirstContact(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User dto.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "subject-alice", response.User.UID)
	require.Equal(t, "alice@example.com", response.User.Email)
	require.Equal(t, "Alice", response.User.Name)
	require.Nil(t, response.User.Role)
	require.Nil(t, response.User.FamilyID)
	require.Equal(t, 0, response.User.Points)
}

func TestAuthHandler_Authenticate_Idempotent(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
		req.Header.Set("Authorization", "Bearer alice-token")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAuthHandler_Authenticate_MissingHeader(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Authenticate_InvalidToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupAuthTestEnv(t)

	user := models.User{
		SubjectID: "subject-alice",
		Email:     "alice@example.com",
		Name:      "Alice",
		Points:    42,
	}
	require.NoError(t, env.db.Create(&user).Error)

	r := env.router()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, 42, response.Points)
}

func TestAuthHandler_Me_UnknownSubject(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
