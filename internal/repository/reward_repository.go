package repository

import (
	"errors"
	"fmt"

	"github.com/habitfam/family-habits-api/internal/models"
	"gorm.io/gorm"
)

// ErrInsufficientPoints is returned when a redemption would overdraw the
// user's point balance.
var ErrInsufficientPoints = errors.New("reward repository: insufficient points")

// GormRewardRepository is a GORM implementation of RewardRepository
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &GormRewardRepository{db: db}
}

// Create creates a new reward
func (r *GormRewardRepository) Create(reward *models.Reward) error {
	return r.db.Create(reward).Error
}

// FindByID finds a reward by ID
func (r *GormRewardRepository) FindByID(id uint64) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.First(&reward, id).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// ListByFamily lists a family's rewards
func (r *GormRewardRepository) ListByFamily(familyID uint64) ([]models.Reward, error) {
	var rewards []models.Reward
	if err := r.db.Where("family_id = ?", familyID).Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// Update saves changes to a reward
func (r *GormRewardRepository) Update(reward *models.Reward) error {
	return r.db.Save(reward).Error
}

// Delete removes a reward and its redemption records
func (r *GormRewardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reward_id = ?", id).
			Delete(&models.RewardRedemption{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Reward{}, id).Error
	})
}

// Redeem debits the user's points and inserts the redemption record. The
// decrement is conditional on the balance, so two concurrent redemptions
// cannot overdraw.
func (r *GormRewardRepository) Redeem(redemption *models.RewardRedemption, userID uint64, cost int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", userID, cost).
			Update("points", gorm.Expr("points - ?", cost))
		if result.Error != nil {
			return fmt.Errorf("failed to debit points: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientPoints
		}

		return tx.Create(redemption).Error
	})
}

// ListRedemptionsByUser lists a user's redemptions with reward detail
func (r *GormRewardRepository) ListRedemptionsByUser(userID uint64) ([]models.RewardRedemption, error) {
	var redemptions []models.RewardRedemption
	if err := r.db.Preload("Reward").
		Where("user_id = ?", userID).
		Order("redeemed_at DESC").
		Find(&redemptions).Error; err != nil {
		return nil, err
	}
	return redemptions, nil
}
