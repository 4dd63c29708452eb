package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/dto"
	apierrors "github.com/habitfam/family-habits-api/internal/errors"
	"github.com/habitfam/family-habits-api/internal/middleware"
	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/services"
)

// FamilyHandler exposes family and membership management.
type FamilyHandler struct {
	familyService *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

// GetFamily returns the caller's family with its roster.
func (h *FamilyHandler) GetFamily(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	detail, err := h.familyService.GetFamilyForSubject(subject)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDetailDTO(*detail))
}

// CreateFamily creates a family with the caller as its first parent.
func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateFamilyRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.familyService.CreateFamily(subject, req.Name)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFamilyDetailDTO(*detail))
}

// RenameFamily changes the family name.
func (h *FamilyHandler) RenameFamily(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type RenameFamilyRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req RenameFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.familyService.RenameFamily(subject, req.Name)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDetailDTO(*detail))
}

// DeleteFamily dissolves the caller's family; members keep their accounts.
func (h *FamilyHandler) DeleteFamily(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.familyService.DeleteFamily(subject); err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Family deleted successfully",
	})
}

// AddMember attaches an existing user to the caller's family by email.
func (h *FamilyHandler) AddMember(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type AddMemberRequest struct {
		Email string            `json:"email" binding:"required,email"`
		Role  models.FamilyRole `json:"role" binding:"required,oneof=parent child"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.familyService.AddMember(subject, req.Email, req.Role)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFamilyDetailDTO(*detail))
}

// UpdateMember changes a member's name or role.
func (h *FamilyHandler) UpdateMember(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	type UpdateMemberRequest struct {
		Name *string            `json:"name"`
		Role *models.FamilyRole `json:"role" binding:"omitempty,oneof=parent child"`
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	detail, err := h.familyService.UpdateMember(subject, memberID, services.UpdateMemberInput{
		Name: req.Name,
		Role: req.Role,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDetailDTO(*detail))
}

func respondFamilyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoFamily),
		errors.Is(err, services.ErrFamilyNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrTargetUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyInFamily):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidFamilyName),
		errors.Is(err, services.ErrNoFieldsToUpdate),
		errors.Is(err, services.ErrNotParent):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
