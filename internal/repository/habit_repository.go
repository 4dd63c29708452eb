package repository

import (
	"github.com/habitfam/family-habits-api/internal/models"
	"gorm.io/gorm"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

// CreateWithSchedule creates a habit and one schedule row per listed day.
// Duplicate days in the input produce duplicate rows.
func (r *GormHabitRepository) CreateWithSchedule(habit *models.Habit, days []models.DayOfWeek) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(habit).Error; err != nil {
			return err
		}

		return createScheduleRows(tx, habit.ID, days)
	})
}

// FindByID finds a habit by ID with optional preloading
func (r *GormHabitRepository) FindByID(id uint64, preload ...string) (*models.Habit, error) {
	var habit models.Habit
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&habit, id).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// ListByCreators lists habits created by any of the given users
func (r *GormHabitRepository) ListByCreators(creatorIDs []uint64) ([]models.Habit, error) {
	if len(creatorIDs) == 0 {
		return []models.Habit{}, nil
	}

	var habits []models.Habit
	if err := r.db.
		Preload("Schedule").
		Preload("CreatedBy").
		Preload("Assignments").
		Preload("Assignments.User").
		Where("created_by_id IN ?", creatorIDs).
		Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

// Update saves changes to a habit
func (r *GormHabitRepository) Update(habit *models.Habit) error {
	return r.db.Save(habit).Error
}

// ReplaceSchedule deletes a habit's schedule rows and inserts new ones
func (r *GormHabitRepository) ReplaceSchedule(habitID uint64, days []models.DayOfWeek) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", habitID).
			Delete(&models.HabitSchedule{}).Error; err != nil {
			return err
		}

		return createScheduleRows(tx, habitID, days)
	})
}

// Delete removes a habit and everything hanging off it
func (r *GormHabitRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		assignmentIDs, err := assignmentIDsForHabit(tx, id)
		if err != nil {
			return err
		}

		if len(assignmentIDs) > 0 {
			if err := tx.Where("assignment_id IN ?", assignmentIDs).
				Delete(&models.HabitCompletion{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("habit_id = ?", id).
			Delete(&models.HabitAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("habit_id = ?", id).
			Delete(&models.HabitSchedule{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Habit{}, id).Error
	})
}

// IsScheduledOn reports whether the habit has a schedule row for the day
func (r *GormHabitRepository) IsScheduledOn(habitID uint64, day models.DayOfWeek) (bool, error) {
	var count int64
	err := r.db.Model(&models.HabitSchedule{}).
		Where("habit_id = ? AND day_of_week = ?", habitID, day).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAssignment creates a child-habit assignment
func (r *GormHabitRepository) CreateAssignment(assignment *models.HabitAssignment) error {
	return r.db.Create(assignment).Error
}

// FindAssignment finds the assignment of a habit to a specific user
func (r *GormHabitRepository) FindAssignment(habitID, userID uint64) (*models.HabitAssignment, error) {
	var assignment models.HabitAssignment
	if err := r.db.Where("habit_id = ? AND user_id = ?", habitID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindFirstAssignmentByHabit finds any assignment of the habit
func (r *GormHabitRepository) FindFirstAssignmentByHabit(habitID uint64) (*models.HabitAssignment, error) {
	var assignment models.HabitAssignment
	if err := r.db.Preload("User").
		Where("habit_id = ?", habitID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListAssignmentsByUser lists a user's assignments with habit detail
func (r *GormHabitRepository) ListAssignmentsByUser(userID uint64) ([]models.HabitAssignment, error) {
	var assignments []models.HabitAssignment
	if err := r.db.
		Preload("Habit").
		Preload("Habit.Schedule").
		Where("user_id = ?", userID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListAssignmentsByHabitAndUsers lists assignments of the habit held by any
// of the given users
func (r *GormHabitRepository) ListAssignmentsByHabitAndUsers(habitID uint64, userIDs []uint64) ([]models.HabitAssignment, error) {
	if len(userIDs) == 0 {
		return []models.HabitAssignment{}, nil
	}

	var assignments []models.HabitAssignment
	if err := r.db.Where("habit_id = ? AND user_id IN ?", habitID, userIDs).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// UpdateAssignment saves changes to an assignment
func (r *GormHabitRepository) UpdateAssignment(assignment *models.HabitAssignment) error {
	return r.db.Save(assignment).Error
}

// DeleteAssignment removes an assignment and its completions
func (r *GormHabitRepository) DeleteAssignment(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).
			Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.HabitAssignment{}, id).Error
	})
}

func createScheduleRows(tx *gorm.DB, habitID uint64, days []models.DayOfWeek) error {
	if len(days) == 0 {
		return nil
	}

	rows := make([]models.HabitSchedule, len(days))
	for i, day := range days {
		rows[i] = models.HabitSchedule{
			HabitID:   habitID,
			DayOfWeek: day,
		}
	}
	return tx.Create(&rows).Error
}

func assignmentIDsForHabit(tx *gorm.DB, habitID uint64) ([]uint64, error) {
	var ids []uint64
	err := tx.Model(&models.HabitAssignment{}).
		Where("habit_id = ?", habitID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
