package models

import (
	"time"
)

// RewardRedemption records a child exchanging points for a reward.
type RewardRedemption struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"user_id"`
	RewardID   uint64    `gorm:"not null;index" json:"reward_id"`
	RedeemedAt time.Time `gorm:"not null" json:"redeemed_at"`

	// Relations
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reward Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}
