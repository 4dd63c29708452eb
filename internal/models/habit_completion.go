package models

import (
	"time"
)

// CompletedOnLayout is the calendar-day format stored with each completion.
const CompletedOnLayout = "2006-01-02"

// HabitCompletion records that an assignment was fulfilled on a given day.
// The (assignment, day) unique index enforces at most one completion per
// assignment per calendar day, even under concurrent requests.
type HabitCompletion struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	AssignmentID uint64    `gorm:"not null;uniqueIndex:idx_completion_assignment_day" json:"assignment_id"`
	CompletedAt  time.Time `gorm:"not null" json:"completed_at"`
	CompletedOn  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_completion_assignment_day" json:"completed_on"`
	Note         string    `gorm:"type:text" json:"note,omitempty"`

	// Relations
	Assignment HabitAssignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}
