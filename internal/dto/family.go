package dto

import (
	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/services"
)

// FamilyDTO represents a family in API responses
type FamilyDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// FamilyDetailDTO represents a family with its roster
type FamilyDetailDTO struct {
	Family  FamilyDTO `json:"family"`
	Members []UserDTO `json:"members"`
}

// ToFamilyDTO converts a Family model to FamilyDTO
func ToFamilyDTO(family models.Family) FamilyDTO {
	return FamilyDTO{
		ID:   family.ID,
		Name: family.Name,
	}
}

// ToFamilyDetailDTO converts a family with members to its detail DTO
func ToFamilyDetailDTO(detail services.FamilyWithMembers) FamilyDetailDTO {
	members := make([]UserDTO, len(detail.Members))
	for i, m := range detail.Members {
		members[i] = ToUserDTO(m)
	}

	return FamilyDetailDTO{
		Family:  ToFamilyDTO(*detail.Family),
		Members: members,
	}
}
