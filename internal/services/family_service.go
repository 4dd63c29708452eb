package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/habitfam/family-habits-api/internal/constants"
	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrFamilyNotFound     = errors.New("family not found")
	ErrAlreadyInFamily    = errors.New("user already belongs to a family")
	ErrInvalidFamilyName  = errors.New("family name is too short")
	ErrMemberNotFound     = errors.New("user not found in this family")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrTargetUserNotFound = errors.New("no user with this email")
)

// FamilyService owns family creation, the membership roster, and role
// assignment.
type FamilyService struct {
	familyRepo repository.FamilyRepository
	userRepo   repository.UserRepository
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(familyRepo repository.FamilyRepository, userRepo repository.UserRepository) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		userRepo:   userRepo,
	}
}

// FamilyWithMembers bundles a family and its current roster.
type FamilyWithMembers struct {
	Family  *models.Family
	Members []models.User
}

// CreateFamily creates a family and makes the requester its first parent.
func (s *FamilyService) CreateFamily(subjectID, name string) (*FamilyWithMembers, error) {
	if len(strings.TrimSpace(name)) < constants.MinFamilyNameLength {
		return nil, ErrInvalidFamilyName
	}

	user, err := s.userRepo.FindBySubject(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.FamilyID != nil {
		return nil, ErrAlreadyInFamily
	}

	family := &models.Family{Name: name}
	if err := s.familyRepo.Create(family); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	role := models.RoleParent
	user.FamilyID = &family.ID
	user.Role = &role
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to attach creator to family: %w", err)
	}

	return s.GetFamilyWithMembers(family.ID)
}

// GetFamilyForSubject returns the caller's family with its roster.
func (s *FamilyService) GetFamilyForSubject(subjectID string) (*FamilyWithMembers, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	return s.GetFamilyWithMembers(*user.FamilyID)
}

// GetFamilyWithMembers returns a family and all of its members.
func (s *FamilyService) GetFamilyWithMembers(familyID uint64) (*FamilyWithMembers, error) {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}

	members, err := s.userRepo.ListByFamily(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}

	return &FamilyWithMembers{Family: family, Members: members}, nil
}

// AddMember attaches an existing user, found by email, to the caller's
// family with the given role. Parent only.
func (s *FamilyService) AddMember(subjectID, email string, role models.FamilyRole) (*FamilyWithMembers, error) {
	caller, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !caller.HasRole(models.RoleParent) {
		return nil, ErrNotParent
	}

	target, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if target.FamilyID != nil {
		return nil, ErrAlreadyInFamily
	}

	target.FamilyID = caller.FamilyID
	target.Role = &role
	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return s.GetFamilyWithMembers(*caller.FamilyID)
}

// UpdateMemberInput carries the optional member fields. At least one must
// be present.
type UpdateMemberInput struct {
	Name *string
	Role *models.FamilyRole
}

// UpdateMember changes a member's name or role. Parent only; the member
// must belong to the caller's family.
func (s *FamilyService) UpdateMember(subjectID string, memberID uint64, input UpdateMemberInput) (*FamilyWithMembers, error) {
	caller, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !caller.HasRole(models.RoleParent) {
		return nil, ErrNotParent
	}
	if input.Name == nil && input.Role == nil {
		return nil, ErrNoFieldsToUpdate
	}

	member, err := s.userRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member.FamilyID == nil || *member.FamilyID != *caller.FamilyID {
		return nil, ErrMemberNotFound
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Role != nil {
		member.Role = input.Role
	}
	if err := s.userRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return s.GetFamilyWithMembers(*caller.FamilyID)
}

// RenameFamily changes the family name. Parent only.
func (s *FamilyService) RenameFamily(subjectID, name string) (*FamilyWithMembers, error) {
	if len(strings.TrimSpace(name)) < constants.MinFamilyNameLength {
		return nil, ErrInvalidFamilyName
	}

	caller, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !caller.HasRole(models.RoleParent) {
		return nil, ErrNotParent
	}

	family, err := s.familyRepo.FindByID(*caller.FamilyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}

	family.Name = name
	if err := s.familyRepo.Update(family); err != nil {
		return nil, fmt.Errorf("failed to rename family: %w", err)
	}

	return s.GetFamilyWithMembers(family.ID)
}

// DeleteFamily removes the caller's family. Every member keeps their user
// record but loses family link and role. Parent only.
func (s *FamilyService) DeleteFamily(subjectID string) error {
	caller, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return err
	}
	if !caller.HasRole(models.RoleParent) {
		return ErrNotParent
	}

	if _, err := s.familyRepo.FindByID(*caller.FamilyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFamilyNotFound
		}
		return fmt.Errorf("failed to find family: %w", err)
	}

	if err := s.familyRepo.DeleteWithMembers(*caller.FamilyID); err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}

	return nil
}
