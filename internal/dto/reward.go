package dto

import (
	"time"

	"github.com/habitfam/family-habits-api/internal/models"
)

// RewardDTO represents a reward in API responses
type RewardDTO struct {
	ID             uint64 `json:"id"`
	FamilyID       uint64 `json:"family_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
	Emoji          string `json:"emoji"`
}

// RedemptionDTO represents a freshly created redemption record
type RedemptionDTO struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	RewardID   uint64    `json:"reward_id"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

// RedeemedRewardDTO represents one entry of the caller's redemption history
type RedeemedRewardDTO struct {
	Reward     RewardDTO `json:"reward"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

// ToRewardDTO converts a Reward model to RewardDTO
func ToRewardDTO(reward models.Reward) RewardDTO {
	return RewardDTO{
		ID:             reward.ID,
		FamilyID:       reward.FamilyID,
		Title:          reward.Title,
		Description:    reward.Description,
		PointsRequired: reward.PointsRequired,
		Emoji:          reward.Emoji,
	}
}

// ToRedemptionDTO converts a RewardRedemption model to RedemptionDTO
func ToRedemptionDTO(redemption models.RewardRedemption) RedemptionDTO {
	return RedemptionDTO{
		ID:         redemption.ID,
		UserID:     redemption.UserID,
		RewardID:   redemption.RewardID,
		RedeemedAt: redemption.RedeemedAt,
	}
}

// ToRedeemedRewardDTO converts a redemption with preloaded reward detail
func ToRedeemedRewardDTO(redemption models.RewardRedemption) RedeemedRewardDTO {
	return RedeemedRewardDTO{
		Reward:     ToRewardDTO(redemption.Reward),
		RedeemedAt: redemption.RedeemedAt,
	}
}
