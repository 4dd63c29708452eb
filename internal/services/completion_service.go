package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/repository"
	"github.com/habitfam/family-habits-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrHabitNotAssigned    = errors.New("habit is not assigned to you or is not active")
	ErrNotScheduledToday   = errors.New("this habit is not scheduled for today")
	ErrAlreadyCompleted    = errors.New("habit already completed today")
	ErrInvalidRole         = errors.New("invalid role")
	ErrNotAssignedToCaller = errors.New("habit is not assigned to you")
)

// CompletionService records habit completions and credits points.
type CompletionService struct {
	habitRepo      repository.HabitRepository
	completionRepo repository.CompletionRepository
	userRepo       repository.UserRepository

	// now is swappable for schedule tests
	now func() time.Time
}

// NewCompletionService creates a new CompletionService.
func NewCompletionService(habitRepo repository.HabitRepository, completionRepo repository.CompletionRepository, userRepo repository.UserRepository) *CompletionService {
	return &CompletionService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		userRepo:       userRepo,
		now:            time.Now,
	}
}

// CompletionResult is returned after a successful completion.
type CompletionResult struct {
	PointsEarned int
	TotalPoints  int
	Completion   *models.HabitCompletion
}

// CompletionEntry pairs a completion with the child it belongs to. User is
// nil when the caller is the child themselves.
type CompletionEntry struct {
	Completion models.HabitCompletion
	User       *models.User
}

// Complete records that the caller fulfilled the habit today and credits
// the habit's points. Child only; the habit must be actively assigned to
// the caller, scheduled for today's weekday, and not yet completed today.
func (s *CompletionService) Complete(habitID uint64, subjectID, note string) (*CompletionResult, error) {
	child, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !child.HasRole(models.RoleChild) {
		return nil, ErrNotChild
	}

	habit, err := s.habitRepo.FindByID(habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	assignment, err := s.habitRepo.FindAssignment(habitID, child.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotAssigned
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	if !assignment.IsActive {
		return nil, ErrHabitNotAssigned
	}

	now := s.now()
	scheduled, err := s.habitRepo.IsScheduledOn(habitID, utils.DayCode(now))
	if err != nil {
		return nil, fmt.Errorf("failed to check schedule: %w", err)
	}
	if !scheduled {
		return nil, ErrNotScheduledToday
	}

	today := now.Format(models.CompletedOnLayout)
	if _, err := s.completionRepo.FindByAssignmentOn(assignment.ID, today); err == nil {
		return nil, ErrAlreadyCompleted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check completions: %w", err)
	}

	completion := &models.HabitCompletion{
		AssignmentID: assignment.ID,
		CompletedAt:  now,
		CompletedOn:  today,
		Note:         note,
	}

	// The unique index backstops the check above under concurrent requests.
	if err := s.completionRepo.Record(completion, child.ID, habit.Points); err != nil {
		if errors.Is(err, repository.ErrDuplicateCompletion) {
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	updated, err := s.userRepo.FindByID(child.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	return &CompletionResult{
		PointsEarned: habit.Points,
		TotalPoints:  updated.Points,
		Completion:   completion,
	}, nil
}

// ListCompletions returns the habit's completion history, newest first. A
// child sees only their own; a parent sees every child of the family with
// an assignment for the habit, each entry annotated with the child.
func (s *CompletionService) ListCompletions(habitID uint64, subjectID string) ([]CompletionEntry, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}

	switch {
	case user.HasRole(models.RoleChild):
		return s.listOwnCompletions(habitID, user)
	case user.HasRole(models.RoleParent):
		return s.listFamilyCompletions(habitID, user)
	default:
		return nil, ErrInvalidRole
	}
}

func (s *CompletionService) listOwnCompletions(habitID uint64, child *models.User) ([]CompletionEntry, error) {
	assignment, err := s.habitRepo.FindAssignment(habitID, child.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAssignedToCaller
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	completions, err := s.completionRepo.ListByAssignment(assignment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	entries := make([]CompletionEntry, len(completions))
	for i, c := range completions {
		entries[i] = CompletionEntry{Completion: c}
	}
	return entries, nil
}

func (s *CompletionService) listFamilyCompletions(habitID uint64, parent *models.User) ([]CompletionEntry, error) {
	children, err := s.userRepo.ListChildrenByFamily(*parent.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}

	childIDs := make([]uint64, len(children))
	childByID := make(map[uint64]*models.User, len(children))
	for i := range children {
		childIDs[i] = children[i].ID
		childByID[children[i].ID] = &children[i]
	}

	assignments, err := s.habitRepo.ListAssignmentsByHabitAndUsers(habitID, childIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	if len(assignments) == 0 {
		return []CompletionEntry{}, nil
	}

	assignmentIDs := make([]uint64, len(assignments))
	userByAssignment := make(map[uint64]uint64, len(assignments))
	for i, a := range assignments {
		assignmentIDs[i] = a.ID
		userByAssignment[a.ID] = a.UserID
	}

	completions, err := s.completionRepo.ListByAssignments(assignmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	entries := make([]CompletionEntry, len(completions))
	for i, c := range completions {
		entries[i] = CompletionEntry{
			Completion: c,
			User:       childByID[userByAssignment[c.AssignmentID]],
		}
	}
	return entries, nil
}
