package repository

import (
	"errors"
	"fmt"

	"github.com/habitfam/family-habits-api/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateCompletion is returned when a completion already exists for
// the assignment on the same calendar day.
var ErrDuplicateCompletion = errors.New("completion repository: assignment already completed on this day")

// GormCompletionRepository is a GORM implementation of CompletionRepository
type GormCompletionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new CompletionRepository
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &GormCompletionRepository{db: db}
}

// Record inserts a completion and credits the user's points atomically.
// The (assignment, day) unique index turns a same-day duplicate into
// ErrDuplicateCompletion instead of a second insert.
func (r *GormCompletionRepository) Record(completion *models.HabitCompletion, userID uint64, points int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCompletion
			}
			return fmt.Errorf("failed to insert completion: %w", err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", points)).Error; err != nil {
			return fmt.Errorf("failed to credit points: %w", err)
		}

		return nil
	})
}

// FindByAssignmentOn finds a completion for the assignment on a day
func (r *GormCompletionRepository) FindByAssignmentOn(assignmentID uint64, day string) (*models.HabitCompletion, error) {
	var completion models.HabitCompletion
	if err := r.db.Where("assignment_id = ? AND completed_on = ?", assignmentID, day).
		First(&completion).Error; err != nil {
		return nil, err
	}
	return &completion, nil
}

// ListByAssignment lists an assignment's completions, newest first
func (r *GormCompletionRepository) ListByAssignment(assignmentID uint64) ([]models.HabitCompletion, error) {
	var completions []models.HabitCompletion
	if err := r.db.Where("assignment_id = ?", assignmentID).
		Order("completed_at DESC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

// ListByAssignments lists completions across assignments, newest first
func (r *GormCompletionRepository) ListByAssignments(assignmentIDs []uint64) ([]models.HabitCompletion, error) {
	if len(assignmentIDs) == 0 {
		return []models.HabitCompletion{}, nil
	}

	var completions []models.HabitCompletion
	if err := r.db.Where("assignment_id IN ?", assignmentIDs).
		Order("completed_at DESC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}
