package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/dto"
	apierrors "github.com/habitfam/family-habits-api/internal/errors"
	"github.com/habitfam/family-habits-api/internal/middleware"
	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/services"
)

// HabitHandler exposes habit CRUD, assignment, and completion endpoints.
type HabitHandler struct {
	habitService      *services.HabitService
	completionService *services.CompletionService
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService *services.HabitService, completionService *services.CompletionService) *HabitHandler {
	return &HabitHandler{
		habitService:      habitService,
		completionService: completionService,
	}
}

// CreateHabit creates a habit owned by the caller.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateHabitRequest struct {
		Title       string             `json:"title" binding:"required"`
		Description string             `json:"description"`
		Points      int                `json:"points"`
		Schedule    []models.DayOfWeek `json:"schedule" binding:"required"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.Create(subject, services.CreateHabitInput{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Schedule:    req.Schedule,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHabitDTO(*habit))
}

// ListHabits returns every habit of the caller's family.
func (h *HabitHandler) ListHabits(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	habits, err := h.habitService.List(subject)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	habitDTOs := make([]dto.HabitDTO, len(habits))
	for i, habit := range habits {
		habitDTOs[i] = dto.ToHabitDTO(habit)
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": habitDTOs,
	})
}

// GetHabit returns one habit of the caller's family.
func (h *HabitHandler) GetHabit(c *gin.Context) {
	subject, habitID, ok := subjectAndID(c)
	if !ok {
		return
	}

	habit, err := h.habitService.Get(habitID, subject)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*habit))
}

// UpdateHabit modifies a habit. Creator only.
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	subject, habitID, ok := subjectAndID(c)
	if !ok {
		return
	}

	type UpdateHabitRequest struct {
		Title       *string            `json:"title"`
		Description *string            `json:"description"`
		Points      *int               `json:"points"`
		Schedule    []models.DayOfWeek `json:"schedule"`
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.Update(habitID, subject, services.UpdateHabitInput{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Schedule:    req.Schedule,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*habit))
}

// DeleteHabit removes a habit and everything hanging off it. Creator only.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	subject, habitID, ok := subjectAndID(c)
	if !ok {
		return
	}

	if err := h.habitService.Delete(habitID, subject); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted successfully",
	})
}

// AssignHabit assigns a habit to a child of the caller's family.
func (h *HabitHandler) AssignHabit(c *gin.Context) {
	subject, habitID, ok := subjectAndID(c)
	if !ok {
		return
	}

	type AssignHabitRequest struct {
		ChildID  uint64 `json:"child_id" binding:"required"`
		IsActive *bool  `json:"is_active"`
	}

	var req AssignHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.habitService.Assign(habitID, subject, services.AssignHabitInput{
		ChildID:  req.ChildID,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Habit assigned successfully",
		"assignment": dto.ToAssignmentDTO(*assignment),
	})
}

// GetAssignedHabits returns the caller's own assignments with habit detail.
func (h *HabitHandler) GetAssignedHabits(c *gin.Context) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	assignments, err := h.habitService.AssignedToCaller(subject)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	assignedDTOs := make([]dto.AssignedHabitDTO, len(assignments))
	for i, assignment := range assignments {
		assignedDTOs[i] = dto.ToAssignedHabitDTO(assignment)
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignedDTOs,
	})
}

// UpdateAssignment toggles the active flag on the habit's assignment.
func (h *HabitHandler) UpdateAssignment(c *gin.Context) {
	subject, habitID, ok := subjectAndID(c)
	if !ok {
		return
	}

	type UpdateAssignmentRequest struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}

	var req UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.habitService.UpdateAssignment(habitID, subject, *req.IsActive)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Assignment updated successfully",
		"assignment": dto.ToAssignmentDTO(*assignment),
	})
}

// RemoveAssignment deletes the habit's assignment and its completions.
func (h *HabitHandler) RemoveAssignment(c *gin.Context) {
	subject, habitID, ok := subjectAndID(c)
	if !ok {
		return
	}

	if err := h.habitService.RemoveAssignment(habitID, subject); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assignment removed successfully",
	})
}

// CompleteHabit records that the caller fulfilled the habit today.
func (h *HabitHandler) CompleteHabit(c *gin.Context) {
	subject, habitID, ok := subjectAndID(c)
	if !ok {
		return
	}

	type CompleteHabitRequest struct {
		Note string `json:"note"`
	}

	// Empty body is valid; the note is optional.
	var req CompleteHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.completionService.Complete(habitID, subject, req.Note)
	if err != nil {
		respondCompletionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CompleteHabitResponse{
		Message:      "Habit completed successfully",
		PointsEarned: result.PointsEarned,
		TotalPoints:  result.TotalPoints,
		Completion:   dto.ToCompletionDTO(services.CompletionEntry{Completion: *result.Completion}),
	})
}

// GetCompletions returns the habit's completion history, scoped by role.
func (h *HabitHandler) GetCompletions(c *gin.Context) {
	subject, habitID, ok := subjectAndID(c)
	if !ok {
		return
	}

	entries, err := h.completionService.ListCompletions(habitID, subject)
	if err != nil {
		respondCompletionError(c, err)
		return
	}

	completionDTOs := make([]dto.CompletionDTO, len(entries))
	for i, entry := range entries {
		completionDTOs[i] = dto.ToCompletionDTO(entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"completions": completionDTOs,
	})
}

// subjectAndID extracts the verified subject and the :id path parameter.
// Responds and returns ok=false on failure.
func subjectAndID(c *gin.Context) (string, uint64, bool) {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return "", 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return "", 0, false
	}

	return subject, id, true
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrHabitNotFound),
		errors.Is(err, services.ErrChildNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyAssigned):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNoFamily),
		errors.Is(err, services.ErrNotParent),
		errors.Is(err, services.ErrNotHabitCreator),
		errors.Is(err, services.ErrHabitTitleRequired),
		errors.Is(err, services.ErrInvalidScheduleDay),
		errors.Is(err, services.ErrTargetNotChild),
		errors.Is(err, services.ErrChildOtherFamily):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

func respondCompletionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrHabitNotFound),
		errors.Is(err, services.ErrNotAssignedToCaller):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoFamily),
		errors.Is(err, services.ErrNotChild),
		errors.Is(err, services.ErrHabitNotAssigned),
		errors.Is(err, services.ErrNotScheduledToday),
		errors.Is(err, services.ErrAlreadyCompleted),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
