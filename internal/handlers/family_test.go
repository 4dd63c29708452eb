package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/constants"
	"github.com/habitfam/family-habits-api/internal/database"
	"github.com/habitfam/family-habits-api/internal/dto"
	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/repository"
	"github.com/habitfam/family-habits-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type familyTestEnv struct {
	db      *gorm.DB
	handler *FamilyHandler
}

func setupFamilyTestEnv(t *testing.T) familyTestEnv {
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
	familyRepo := repository.NewFamilyRepository(db)
	familyService := services.NewFamilyService(familyRepo, userRepo)
	handler := NewFamilyHandler(familyService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return familyTestEnv{db: db, handler: handler}
}

func (env familyTestEnv) createUser(t *testing.T, subject, email string, role *models.FamilyRole, familyID *uint64) *models.User {
	t.Helper()
	user := &models.User{
		SubjectID: subject,
		Email:     email,
		Name:      subject,
		Role:      role,
		FamilyID:  familyID,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env familyTestEnv) createFamily(t *testing.T, name string) *models.Family {
	t.Helper()
	family := &models.Family{Name: name}
	require.NoError(t, env.db.Create(family).Error)
	return family
}

// subjectContext builds a gin context carrying a verified subject, the way
// the auth middleware leaves it.
func subjectContext(method, url string, body []byte, subject string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeySubject, subject)

	return c, w
}

func rolePtr(role models.FamilyRole) *models.FamilyRole {
	return &role
}

func TestFamilyHandler_CreateFamily(t *testing.T) {
	env := setupFamilyTestEnv(t)
	env.createUser(t, "sub-parent", "parent@example.com", nil, nil)

	body, _ := json.Marshal(map[string]string{"name": "The Smiths"})
	c, w := subjectContext(http.MethodPost, "/api/family", body, "sub-parent")

	env.handler.CreateFamily(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.FamilyDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "The Smiths", response.Family.Name)
	require.Len(t, response.Members, 1)
	require.NotNil(t, response.Members[0].Role)
	require.Equal(t, models.RoleParent, *response.Members[0].Role)

	var user models.User
	require.NoError(t, env.db.Where("subject_id = ?", "sub-parent").First(&user).Error)
	require.NotNil(t, user.FamilyID)
	require.Equal(t, response.Family.ID, *user.FamilyID)
}

func TestFamilyHandler_CreateFamily_NameTooShort(t *testing.T) {
	env := setupFamilyTestEnv(t)
	env.createUser(t, "sub-parent", "parent@example.com", nil, nil)

	body, _ := json.Marshal(map[string]string{"name": "X"})
	c, w := subjectContext(http.MethodPost, "/api/family", body, "sub-parent")

	env.handler.CreateFamily(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFamilyHandler_CreateFamily_AlreadyInFamily(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "Existing")
	env.createUser(t, "sub-parent", "parent@example.com", rolePtr(models.RoleParent), &family.ID)

	body, _ := json.Marshal(map[string]string{"name": "Another"})
	c, w := subjectContext(http.MethodPost, "/api/family", body, "sub-parent")

	env.handler.CreateFamily(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestFamilyHandler_GetFamily_NoFamily(t *testing.T) {
	env := setupFamilyTestEnv(t)
	env.createUser(t, "sub-loner", "loner@example.com", nil, nil)

	c, w := subjectContext(http.MethodGet, "/api/family", nil, "sub-loner")

	env.handler.GetFamily(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFamilyHandler_AddMember(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "The Smiths")
	env.createUser(t, "sub-parent", "parent@example.com", rolePtr(models.RoleParent), &family.ID)
	env.createUser(t, "sub-kid", "kid@example.com", nil, nil)

	body, _ := json.Marshal(map[string]string{
		"email": "kid@example.com",
		"role":  "child",
	})
	c, w := subjectContext(http.MethodPost, "/api/family/members", body, "sub-parent")

	env.handler.AddMember(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.FamilyDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Members, 2)

	var kid models.User
	require.NoError(t, env.db.Where("email = ?", "kid@example.com").First(&kid).Error)
	require.NotNil(t, kid.FamilyID)
	require.Equal(t, family.ID, *kid.FamilyID)
	require.True(t, kid.HasRole(models.RoleChild))
}

func TestFamilyHandler_AddMember_AlreadyInFamily(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "The Smiths")
	other := env.createFamily(t, "The Joneses")
	env.createUser(t, "sub-parent", "parent@example.com", rolePtr(models.RoleParent), &family.ID)
	env.createUser(t, "sub-kid", "kid@example.com", rolePtr(models.RoleChild), &other.ID)

	body, _ := json.Marshal(map[string]string{
		"email": "kid@example.com",
		"role":  "child",
	})
	c, w := subjectContext(http.MethodPost, "/api/family/members", body, "sub-parent")

	env.handler.AddMember(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestFamilyHandler_AddMember_ByChild(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "The Smiths")
	env.createUser(t, "sub-kid", "kid@example.com", rolePtr(models.RoleChild), &family.ID)
	env.createUser(t, "sub-other", "other@example.com", nil, nil)

	body, _ := json.Marshal(map[string]string{
		"email": "other@example.com",
		"role":  "child",
	})
	c, w := subjectContext(http.MethodPost, "/api/family/members", body, "sub-kid")

	env.handler.AddMember(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFamilyHandler_AddMember_UnknownEmail(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "The Smiths")
	env.createUser(t, "sub-parent", "parent@example.com", rolePtr(models.RoleParent), &family.ID)

	body, _ := json.Marshal(map[string]string{
		"email": "ghost@example.com",
		"role":  "child",
	})
	c, w := subjectContext(http.MethodPost, "/api/family/members", body, "sub-parent")

	env.handler.AddMember(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFamilyHandler_UpdateMember_Role(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "The Smiths")
	env.createUser(t, "sub-parent", "parent@example.com", rolePtr(models.RoleParent), &family.ID)
	kid := env.createUser(t, "sub-kid", "kid@example.com", rolePtr(models.RoleChild), &family.ID)

	body, _ := json.Marshal(map[string]string{"role": "parent"})
	c, w := subjectContext(http.MethodPatch, "/api/family/members/"+strconv.FormatUint(kid.ID, 10), body, "sub-parent")
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(kid.ID, 10)}}

	env.handler.UpdateMember(c)

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, env.db.First(&updated, kid.ID).Error)
	require.True(t, updated.HasRole(models.RoleParent))
}

func TestFamilyHandler_UpdateMember_NoFields(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "The Smiths")
	env.createUser(t, "sub-parent", "parent@example.com", rolePtr(models.RoleParent), &family.ID)
	kid := env.createUser(t, "sub-kid", "kid@example.com", rolePtr(models.RoleChild), &family.ID)

	c, w := subjectContext(http.MethodPatch, "/api/family/members/1", []byte("{}"), "sub-parent")
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(kid.ID, 10)}}

	env.handler.UpdateMember(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFamilyHandler_RenameFamily(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "Old Name")
	env.createUser(t, "sub-parent", "parent@example.com", rolePtr(models.RoleParent), &family.ID)

	body, _ := json.Marshal(map[string]string{"name": "New Name"})
	c, w := subjectContext(http.MethodPatch, "/api/family", body, "sub-parent")

	env.handler.RenameFamily(c)

	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Family
	require.NoError(t, env.db.First(&updated, family.ID).Error)
	require.Equal(t, "New Name", updated.Name)
}

func TestFamilyHandler_DeleteFamily_DetachesMembers(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "The Smiths")
	env.createUser(t, "sub-parent", "parent@example.com", rolePtr(models.RoleParent), &family.ID)
	kid := env.createUser(t, "sub-kid", "kid@example.com", rolePtr(models.RoleChild), &family.ID)

	c, w := subjectContext(http.MethodDelete, "/api/family", nil, "sub-parent")

	env.handler.DeleteFamily(c)

	require.Equal(t, http.StatusOK, w.Code)

	var deleted models.Family
	require.Error(t, env.db.First(&deleted, family.ID).Error)

	var detached models.User
	require.NoError(t, env.db.First(&detached, kid.ID).Error)
	require.Nil(t, detached.FamilyID)
	require.Nil(t, detached.Role)
}

func TestFamilyHandler_DeleteFamily_ByChild(t *testing.T) {
	env := setupFamilyTestEnv(t)
	family := env.createFamily(t, "The Smiths")
	env.createUser(t, "sub-kid", "kid@example.com", rolePtr(models.RoleChild), &family.ID)

	c, w := subjectContext(http.MethodDelete, "/api/family", nil, "sub-kid")

	env.handler.DeleteFamily(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
