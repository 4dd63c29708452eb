package services

import (
	"errors"
	"fmt"

	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrNotHabitCreator    = errors.New("only the creator can modify this habit")
	ErrHabitTitleRequired = errors.New("title is required")
	ErrInvalidScheduleDay = errors.New("invalid schedule day")
	ErrChildNotFound      = errors.New("child not found")
	ErrTargetNotChild     = errors.New("user is not a child")
	ErrChildOtherFamily   = errors.New("child does not belong to your family")
	ErrAlreadyAssigned    = errors.New("habit is already assigned to this child")
	ErrAssignmentNotFound = errors.New("habit assignment not found")
)

// HabitService owns habit definitions, weekly schedules, and per-child
// assignment state.
type HabitService struct {
	habitRepo repository.HabitRepository
	userRepo  repository.UserRepository
}

// NewHabitService creates a new HabitService.
func NewHabitService(habitRepo repository.HabitRepository, userRepo repository.UserRepository) *HabitService {
	return &HabitService{
		habitRepo: habitRepo,
		userRepo:  userRepo,
	}
}

// CreateHabitInput represents input for creating a habit.
type CreateHabitInput struct {
	Title       string
	Description string
	Points      int
	Schedule    []models.DayOfWeek
}

// UpdateHabitInput represents the optional habit fields. A non-nil Schedule
// replaces the existing schedule rows wholesale.
type UpdateHabitInput struct {
	Title       *string
	Description *string
	Points      *int
	Schedule    []models.DayOfWeek
}

// AssignHabitInput represents input for assigning a habit to a child.
type AssignHabitInput struct {
	ChildID  uint64
	IsActive *bool
}

// Create creates a habit owned by the caller with one schedule row per
// listed day. Duplicate days in the input are kept as-is.
func (s *HabitService) Create(subjectID string, input CreateHabitInput) (*models.Habit, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, ErrHabitTitleRequired
	}
	for _, day := range input.Schedule {
		if !day.Valid() {
			return nil, ErrInvalidScheduleDay
		}
	}

	habit := &models.Habit{
		Title:       input.Title,
		Description: input.Description,
		Points:      input.Points,
		CreatedByID: user.ID,
	}

	if err := s.habitRepo.CreateWithSchedule(habit, input.Schedule); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return s.habitRepo.FindByID(habit.ID, "Schedule", "CreatedBy")
}

// List returns every habit created by any member of the caller's family,
// with schedule, assignee state, and creator detail preloaded.
func (s *HabitService) List(subjectID string) ([]models.Habit, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}

	members, err := s.userRepo.ListByFamily(*user.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}

	creatorIDs := make([]uint64, len(members))
	for i, m := range members {
		creatorIDs[i] = m.ID
	}

	habits, err := s.habitRepo.ListByCreators(creatorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	return habits, nil
}

// Get returns one habit with full detail. Habits created outside the
// caller's family are reported as not found.
func (s *HabitService) Get(habitID uint64, subjectID string) (*models.Habit, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}

	return s.findFamilyHabit(habitID, *user.FamilyID, "Schedule", "CreatedBy", "Assignments", "Assignments.User")
}

// Update modifies a habit. Only the original creator may update it; a
// supplied schedule fully replaces the existing rows.
func (s *HabitService) Update(habitID uint64, subjectID string, input UpdateHabitInput) (*models.Habit, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}

	habit, err := s.findFamilyHabit(habitID, *user.FamilyID)
	if err != nil {
		return nil, err
	}
	if habit.CreatedByID != user.ID {
		return nil, ErrNotHabitCreator
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrHabitTitleRequired
		}
		habit.Title = *input.Title
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.Points != nil {
		habit.Points = *input.Points
	}
	for _, day := range input.Schedule {
		if !day.Valid() {
			return nil, ErrInvalidScheduleDay
		}
	}

	if err := s.habitRepo.Update(habit); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	if input.Schedule != nil {
		if err := s.habitRepo.ReplaceSchedule(habitID, input.Schedule); err != nil {
			return nil, fmt.Errorf("failed to replace schedule: %w", err)
		}
	}

	return s.habitRepo.FindByID(habitID, "Schedule", "CreatedBy")
}

// Delete removes a habit with everything hanging off it. Creator only.
func (s *HabitService) Delete(habitID uint64, subjectID string) error {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return err
	}

	habit, err := s.findFamilyHabit(habitID, *user.FamilyID)
	if err != nil {
		return err
	}
	if habit.CreatedByID != user.ID {
		return ErrNotHabitCreator
	}

	if err := s.habitRepo.Delete(habitID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	return nil
}

// Assign assigns a habit to a child in the caller's family. Parent only;
// assigning the same habit to the same child twice is a conflict.
func (s *HabitService) Assign(habitID uint64, subjectID string, input AssignHabitInput) (*models.HabitAssignment, error) {
	parent, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !parent.HasRole(models.RoleParent) {
		return nil, ErrNotParent
	}

	if _, err := s.findFamilyHabit(habitID, *parent.FamilyID); err != nil {
		return nil, err
	}

	child, err := s.userRepo.FindByID(input.ChildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to find child: %w", err)
	}
	if !child.HasRole(models.RoleChild) {
		return nil, ErrTargetNotChild
	}
	if child.FamilyID == nil || *child.FamilyID != *parent.FamilyID {
		return nil, ErrChildOtherFamily
	}

	if _, err := s.habitRepo.FindAssignment(habitID, child.ID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing assignment: %w", err)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	assignment := &models.HabitAssignment{
		UserID:   child.ID,
		HabitID:  habitID,
		IsActive: isActive,
	}
	if err := s.habitRepo.CreateAssignment(assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return assignment, nil
}

// AssignedToCaller returns the caller's own assignments with habit detail
// and schedule.
func (s *HabitService) AssignedToCaller(subjectID string) ([]models.HabitAssignment, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.habitRepo.ListAssignmentsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

// UpdateAssignment toggles the active flag on the habit's assignment.
// Parent only; the assignment is resolved by habit id.
func (s *HabitService) UpdateAssignment(habitID uint64, subjectID string, isActive bool) (*models.HabitAssignment, error) {
	assignment, err := s.resolveFamilyAssignment(habitID, subjectID)
	if err != nil {
		return nil, err
	}

	assignment.IsActive = isActive
	if err := s.habitRepo.UpdateAssignment(assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	return assignment, nil
}

// RemoveAssignment deletes the habit's assignment and its completions.
// Parent only; the assignment is resolved by habit id.
func (s *HabitService) RemoveAssignment(habitID uint64, subjectID string) error {
	assignment, err := s.resolveFamilyAssignment(habitID, subjectID)
	if err != nil {
		return err
	}

	if err := s.habitRepo.DeleteAssignment(assignment.ID); err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}

	return nil
}

// findFamilyHabit loads a habit and verifies its creator belongs to the
// family. Habits outside the family are indistinguishable from missing ones.
func (s *HabitService) findFamilyHabit(habitID, familyID uint64, preload ...string) (*models.Habit, error) {
	habit, err := s.habitRepo.FindByID(habitID, append(preload, "CreatedBy")...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	creator := habit.CreatedBy
	if creator.FamilyID == nil || *creator.FamilyID != familyID {
		return nil, ErrHabitNotFound
	}

	return habit, nil
}

// resolveFamilyAssignment finds the habit's first assignment and verifies
// the caller is a parent of the assignee's family.
func (s *HabitService) resolveFamilyAssignment(habitID uint64, subjectID string) (*models.HabitAssignment, error) {
	parent, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !parent.HasRole(models.RoleParent) {
		return nil, ErrNotParent
	}

	assignment, err := s.habitRepo.FindFirstAssignmentByHabit(habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	assignee := assignment.User
	if assignee.FamilyID == nil || *assignee.FamilyID != *parent.FamilyID {
		return nil, ErrAssignmentNotFound
	}

	return assignment, nil
}
