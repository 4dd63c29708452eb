package dto

import (
	"github.com/habitfam/family-habits-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64             `json:"id"`
	UID      string             `json:"uid"`
	Email    string             `json:"email"`
	Name     string             `json:"name"`
	Role     *models.FamilyRole `json:"role"`
	FamilyID *uint64            `json:"family_id"`
	Points   int                `json:"points"`
}

// ChildProfileDTO is the public profile attached to completion history
type ChildProfileDTO struct {
	ID    uint64             `json:"id"`
	UID   string             `json:"uid"`
	Email string             `json:"email"`
	Name  string             `json:"name"`
	Role  *models.FamilyRole `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		UID:      user.SubjectID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		FamilyID: user.FamilyID,
		Points:   user.Points,
	}
}

// ToChildProfileDTO converts a User model to ChildProfileDTO
func ToChildProfileDTO(user models.User) ChildProfileDTO {
	return ChildProfileDTO{
		ID:    user.ID,
		UID:   user.SubjectID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
