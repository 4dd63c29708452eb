package models

import (
	"time"
)

type FamilyRole string

const (
	RoleParent FamilyRole = "parent"
	RoleChild  FamilyRole = "child"
)

// User is created on the first verified request from a new subject.
// Role and FamilyID stay nil until the user creates or joins a family.
type User struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	SubjectID string      `gorm:"type:varchar(128);uniqueIndex;not null" json:"uid"`
	Email     string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string      `gorm:"type:varchar(255)" json:"name"`
	Role      *FamilyRole `gorm:"type:varchar(20)" json:"role"`
	FamilyID  *uint64     `json:"family_id"`
	Points    int         `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Relations
	Family        *Family           `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	CreatedHabits []Habit           `gorm:"foreignKey:CreatedByID" json:"-"`
	Assignments   []HabitAssignment `gorm:"foreignKey:UserID" json:"-"`
}

// HasRole reports whether the user currently holds the given role.
func (u *User) HasRole(role FamilyRole) bool {
	return u.Role != nil && *u.Role == role
}
