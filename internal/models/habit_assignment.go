package models

import (
	"time"
)

// HabitAssignment links a child to a habit they are expected to perform.
// A habit can be assigned to a given child at most once.
type HabitAssignment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_assignment_user_habit" json:"user_id"`
	HabitID    uint64    `gorm:"not null;uniqueIndex:idx_assignment_user_habit" json:"habit_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`

	// Relations
	User        User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Habit       Habit             `gorm:"foreignKey:HabitID" json:"habit,omitempty"`
	Completions []HabitCompletion `gorm:"foreignKey:AssignmentID" json:"completions,omitempty"`
}
