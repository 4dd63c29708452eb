package repository

import (
	"github.com/habitfam/family-habits-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindBySubject finds a user by the identity provider's subject identifier
	FindBySubject(subjectID string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update saves changes to a user
	Update(user *models.User) error

	// ListByFamily lists all members of a family
	ListByFamily(familyID uint64) ([]models.User, error)

	// ListChildrenByFamily lists the family members with the child role
	ListChildrenByFamily(familyID uint64) ([]models.User, error)
}

// FamilyRepository defines the interface for family data access
type FamilyRepository interface {
	// Create creates a new family
	Create(family *models.Family) error

	// FindByID finds a family by ID
	FindByID(id uint64) (*models.Family, error)

	// Update saves changes to a family
	Update(family *models.Family) error

	// DeleteWithMembers clears every member's family link and role, then
	// deletes the family, within a single transaction.
	DeleteWithMembers(id uint64) error
}

// HabitRepository defines the interface for habit and assignment data access
type HabitRepository interface {
	// CreateWithSchedule creates a habit and one schedule row per listed day
	CreateWithSchedule(habit *models.Habit, days []models.DayOfWeek) error

	// FindByID finds a habit by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Habit, error)

	// ListByCreators lists habits created by any of the given users
	ListByCreators(creatorIDs []uint64) ([]models.Habit, error)

	// Update saves changes to a habit
	Update(habit *models.Habit) error

	// ReplaceSchedule deletes a habit's schedule rows and inserts new ones
	ReplaceSchedule(habitID uint64, days []models.DayOfWeek) error

	// Delete removes a habit, its schedule, its assignments, and their
	// completions, within a single transaction.
	Delete(id uint64) error

	// IsScheduledOn reports whether the habit has a schedule row for the day
	IsScheduledOn(habitID uint64, day models.DayOfWeek) (bool, error)

	// CreateAssignment creates a child-habit assignment
	CreateAssignment(assignment *models.HabitAssignment) error

	// FindAssignment finds the assignment of a habit to a specific user
	FindAssignment(habitID, userID uint64) (*models.HabitAssignment, error)

	// FindFirstAssignmentByHabit finds any assignment of the habit
	FindFirstAssignmentByHabit(habitID uint64) (*models.HabitAssignment, error)

	// ListAssignmentsByUser lists a user's assignments with habit detail
	ListAssignmentsByUser(userID uint64) ([]models.HabitAssignment, error)

	// ListAssignmentsByHabitAndUsers lists assignments of the habit held by
	// any of the given users
	ListAssignmentsByHabitAndUsers(habitID uint64, userIDs []uint64) ([]models.HabitAssignment, error)

	// UpdateAssignment saves changes to an assignment
	UpdateAssignment(assignment *models.HabitAssignment) error

	// DeleteAssignment removes an assignment and its completions
	DeleteAssignment(id uint64) error
}

// CompletionRepository defines the interface for completion data access
type CompletionRepository interface {
	// Record inserts a completion and credits the user's points within a
	// single transaction. Returns ErrDuplicateCompletion if a completion
	// already exists for the assignment on that calendar day.
	Record(completion *models.HabitCompletion, userID uint64, points int) error

	// FindByAssignmentOn finds a completion for the assignment on a day
	FindByAssignmentOn(assignmentID uint64, day string) (*models.HabitCompletion, error)

	// ListByAssignment lists an assignment's completions, newest first
	ListByAssignment(assignmentID uint64) ([]models.HabitCompletion, error)

	// ListByAssignments lists completions across assignments, newest first
	ListByAssignments(assignmentIDs []uint64) ([]models.HabitCompletion, error)
}

// RewardRepository defines the interface for reward data access
type RewardRepository interface {
	// Create creates a new reward
	Create(reward *models.Reward) error

	// FindByID finds a reward by ID
	FindByID(id uint64) (*models.Reward, error)

	// ListByFamily lists a family's rewards
	ListByFamily(familyID uint64) ([]models.Reward, error)

	// Update saves changes to a reward
	Update(reward *models.Reward) error

	// Delete removes a reward and its redemption records
	Delete(id uint64) error

	// Redeem conditionally debits the user's points and inserts a redemption
	// record within a single transaction. Returns ErrInsufficientPoints if
	// the user's balance is below cost.
	Redeem(redemption *models.RewardRedemption, userID uint64, cost int) error

	// ListRedemptionsByUser lists a user's redemptions with reward detail
	ListRedemptionsByUser(userID uint64) ([]models.RewardRedemption, error)
}
