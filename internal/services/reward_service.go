package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitfam/family-habits-api/internal/constants"
	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/habitfam/family-habits-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRewardNotFound      = errors.New("reward not found")
	ErrRewardOtherFamily   = errors.New("reward belongs to another family")
	ErrRewardTitleRequired = errors.New("title is required")
	ErrNegativePoints      = errors.New("pointsRequired can not be negative")
	ErrInsufficientPoints  = errors.New("insufficient points")
)

// RewardService owns reward definitions and redemption transactions.
type RewardService struct {
	rewardRepo repository.RewardRepository
	userRepo   repository.UserRepository

	// now stamps redemptions, swappable for tests
	now func() time.Time
}

// NewRewardService creates a new RewardService.
func NewRewardService(rewardRepo repository.RewardRepository, userRepo repository.UserRepository) *RewardService {
	return &RewardService{
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// CreateRewardInput represents input for creating a reward.
type CreateRewardInput struct {
	Title          string
	Description    string
	PointsRequired int
	Emoji          string
}

// UpdateRewardInput represents the optional reward fields. At least one
// must be present.
type UpdateRewardInput struct {
	Title          *string
	Description    *string
	PointsRequired *int
	Emoji          *string
}

// Create adds a reward to the caller's family. Parent only.
func (s *RewardService) Create(subjectID string, input CreateRewardInput) (*models.Reward, error) {
	parent, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !parent.HasRole(models.RoleParent) {
		return nil, ErrNotParent
	}

	if input.Title == "" {
		return nil, ErrRewardTitleRequired
	}
	if input.PointsRequired < 0 {
		return nil, ErrNegativePoints
	}

	emoji := input.Emoji
	if emoji == "" {
		emoji = constants.DefaultRewardEmoji
	}

	reward := &models.Reward{
		FamilyID:       *parent.FamilyID,
		Title:          input.Title,
		Description:    input.Description,
		PointsRequired: input.PointsRequired,
		Emoji:          emoji,
	}
	if err := s.rewardRepo.Create(reward); err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}

	return reward, nil
}

// List returns every reward of the caller's family.
func (s *RewardService) List(subjectID string) ([]models.Reward, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.rewardRepo.ListByFamily(*user.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	return rewards, nil
}

// Update modifies a reward of the caller's family. Parent only; at least
// one field must be present.
func (s *RewardService) Update(subjectID string, rewardID uint64, input UpdateRewardInput) (*models.Reward, error) {
	reward, err := s.requireFamilyReward(subjectID, rewardID, models.RoleParent)
	if err != nil {
		return nil, err
	}

	if input.Title == nil && input.Description == nil && input.PointsRequired == nil && input.Emoji == nil {
		return nil, ErrNoFieldsToUpdate
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrRewardTitleRequired
		}
		reward.Title = *input.Title
	}
	if input.Description != nil {
		reward.Description = *input.Description
	}
	if input.PointsRequired != nil {
		if *input.PointsRequired < 0 {
			return nil, ErrNegativePoints
		}
		reward.PointsRequired = *input.PointsRequired
	}
	if input.Emoji != nil {
		reward.Emoji = *input.Emoji
	}

	if err := s.rewardRepo.Update(reward); err != nil {
		return nil, fmt.Errorf("failed to update reward: %w", err)
	}
	return reward, nil
}

// Delete removes a reward of the caller's family together with its
// redemption records. Parent only.
func (s *RewardService) Delete(subjectID string, rewardID uint64) error {
	if _, err := s.requireFamilyReward(subjectID, rewardID, models.RoleParent); err != nil {
		return err
	}

	if err := s.rewardRepo.Delete(rewardID); err != nil {
		return fmt.Errorf("failed to delete reward: %w", err)
	}
	return nil
}

// Redeem exchanges the caller's points for a reward of their family.
// Child only; the conditional decrement rejects overdraws.
func (s *RewardService) Redeem(subjectID string, rewardID uint64) (*models.RewardRedemption, error) {
	child, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !child.HasRole(models.RoleChild) {
		return nil, ErrNotChild
	}

	reward, err := s.rewardRepo.FindByID(rewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to find reward: %w", err)
	}
	if reward.FamilyID != *child.FamilyID {
		return nil, ErrRewardOtherFamily
	}
	if child.Points < reward.PointsRequired {
		return nil, ErrInsufficientPoints
	}

	redemption := &models.RewardRedemption{
		UserID:     child.ID,
		RewardID:   reward.ID,
		RedeemedAt: s.now(),
	}
	if err := s.rewardRepo.Redeem(redemption, child.ID, reward.PointsRequired); err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return nil, ErrInsufficientPoints
		}
		return nil, fmt.Errorf("failed to redeem reward: %w", err)
	}

	return redemption, nil
}

// Redeemed returns the caller's redemption history with reward detail.
func (s *RewardService) Redeemed(subjectID string) ([]models.RewardRedemption, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}

	redemptions, err := s.rewardRepo.ListRedemptionsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}
	return redemptions, nil
}

func (s *RewardService) requireFamilyReward(subjectID string, rewardID uint64, role models.FamilyRole) (*models.Reward, error) {
	user, err := requireFamilyMember(s.userRepo, subjectID)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(role) {
		if role == models.RoleParent {
			return nil, ErrNotParent
		}
		return nil, ErrNotChild
	}

	reward, err := s.rewardRepo.FindByID(rewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to find reward: %w", err)
	}
	if reward.FamilyID != *user.FamilyID {
		return nil, ErrRewardOtherFamily
	}

	return reward, nil
}
