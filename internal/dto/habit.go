package dto

import (
	"time"

	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/services"
)

// AssigneeDTO represents a habit's assignee with assignment state
type AssigneeDTO struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// HabitDTO represents a habit in API responses
type HabitDTO struct {
	ID          uint64             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Points      int                `json:"points"`
	Schedule    []models.DayOfWeek `json:"schedule"`
	CreatedBy   string             `json:"created_by"`
	AssignedTo  []AssigneeDTO      `json:"assigned_to,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// AssignmentDTO represents a child-habit assignment
type AssignmentDTO struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	HabitID    uint64    `json:"habit_id"`
	AssignedAt time.Time `json:"assigned_at"`
	IsActive   bool      `json:"is_active"`
}

// AssignedHabitDTO represents one of the caller's own assignments with
// habit detail
type AssignedHabitDTO struct {
	ID       uint64            `json:"id"`
	IsActive bool              `json:"is_active"`
	Habit    AssignedHabitInfo `json:"habit"`
}

// AssignedHabitInfo is the habit detail nested in AssignedHabitDTO
type AssignedHabitInfo struct {
	ID          uint64             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Points      int                `json:"points"`
	CreatedByID uint64             `json:"created_by_id"`
	Schedule    []models.DayOfWeek `json:"schedule"`
}

// CompletionDTO represents a habit completion. User is present only in the
// parent's family-wide view.
type CompletionDTO struct {
	ID           uint64           `json:"id"`
	AssignmentID uint64           `json:"assignment_id"`
	CompletedAt  time.Time        `json:"completed_at"`
	Note         string           `json:"note,omitempty"`
	User         *ChildProfileDTO `json:"user,omitempty"`
}

// CompleteHabitResponse is returned after a successful completion
type CompleteHabitResponse struct {
	Message      string        `json:"message"`
	PointsEarned int           `json:"points_earned"`
	TotalPoints  int           `json:"total_points"`
	Completion   CompletionDTO `json:"completion"`
}

// ToHabitDTO converts a Habit model (with preloaded relations) to HabitDTO
func ToHabitDTO(habit models.Habit) HabitDTO {
	dto := HabitDTO{
		ID:          habit.ID,
		Title:       habit.Title,
		Description: habit.Description,
		Points:      habit.Points,
		Schedule:    scheduleDays(habit.Schedule),
		CreatedAt:   habit.CreatedAt,
		UpdatedAt:   habit.UpdatedAt,
	}

	if habit.CreatedBy.ID != 0 {
		dto.CreatedBy = habit.CreatedBy.Name
	}

	if len(habit.Assignments) > 0 {
		dto.AssignedTo = make([]AssigneeDTO, 0, len(habit.Assignments))
		for _, assignment := range habit.Assignments {
			if assignment.User.ID == 0 {
				continue
			}
			dto.AssignedTo = append(dto.AssignedTo, AssigneeDTO{
				UID:      assignment.User.SubjectID,
				Name:     assignment.User.Name,
				IsActive: assignment.IsActive,
			})
		}
	}

	return dto
}

// ToAssignmentDTO converts a HabitAssignment model to AssignmentDTO
func ToAssignmentDTO(assignment models.HabitAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         assignment.ID,
		UserID:     assignment.UserID,
		HabitID:    assignment.HabitID,
		AssignedAt: assignment.AssignedAt,
		IsActive:   assignment.IsActive,
	}
}

// ToAssignedHabitDTO converts an assignment with preloaded habit detail
func ToAssignedHabitDTO(assignment models.HabitAssignment) AssignedHabitDTO {
	return AssignedHabitDTO{
		ID:       assignment.ID,
		IsActive: assignment.IsActive,
		Habit: AssignedHabitInfo{
			ID:          assignment.Habit.ID,
			Title:       assignment.Habit.Title,
			Description: assignment.Habit.Description,
			Points:      assignment.Habit.Points,
			CreatedByID: assignment.Habit.CreatedByID,
			Schedule:    scheduleDays(assignment.Habit.Schedule),
		},
	}
}

// ToCompletionDTO converts a completion entry to CompletionDTO
func ToCompletionDTO(entry services.CompletionEntry) CompletionDTO {
	dto := CompletionDTO{
		ID:           entry.Completion.ID,
		AssignmentID: entry.Completion.AssignmentID,
		CompletedAt:  entry.Completion.CompletedAt,
		Note:         entry.Completion.Note,
	}
	if entry.User != nil {
		profile := ToChildProfileDTO(*entry.User)
		dto.User = &profile
	}
	return dto
}

func scheduleDays(schedule []models.HabitSchedule) []models.DayOfWeek {
	days := make([]models.DayOfWeek, len(schedule))
	for i, s := range schedule {
		days[i] = s.DayOfWeek
	}
	return days
}
