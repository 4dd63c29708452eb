package models

import (
	"time"
)

// Habit belongs implicitly to its creator's family.
type Habit struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Points      int       `gorm:"not null" json:"points"`
	CreatedByID uint64    `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	CreatedBy   User              `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Schedule    []HabitSchedule   `gorm:"foreignKey:HabitID" json:"schedule,omitempty"`
	Assignments []HabitAssignment `gorm:"foreignKey:HabitID" json:"assignments,omitempty"`
}
