package services

import (
	"errors"
	"fmt"

	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoFamily     = errors.New("user is not associated with any family")
	ErrNotParent    = errors.New("only parents can perform this action")
	ErrNotChild     = errors.New("only children can perform this action")
)

// AuthService resolves verified identities to application users.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// ResolveOrCreate finds the user for a verified subject, creating the record
// on the first request. Role and family stay unset until the user creates or
// joins a family. Idempotent per subject.
func (s *AuthService) ResolveOrCreate(subjectID, email, name string) (*models.User, error) {
	user, err := s.userRepo.FindBySubject(subjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user = &models.User{
		SubjectID: subjectID,
		Email:     email,
		Name:      name,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves the user for a verified subject.
func (s *AuthService) GetUser(subjectID string) (*models.User, error) {
	user, err := s.userRepo.FindBySubject(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// requireFamilyMember resolves the subject and verifies family membership.
// Shared by the family, habit, completion, and reward services.
func requireFamilyMember(userRepo repository.UserRepository, subjectID string) (*models.User, error) {
	user, err := userRepo.FindBySubject(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.FamilyID == nil {
		return nil, ErrNoFamily
	}
	return user, nil
}
