package models

import (
	"time"
)

type Reward struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	FamilyID       uint64    `gorm:"not null;index" json:"family_id"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	PointsRequired int       `gorm:"not null" json:"points_required"`
	Emoji          string    `gorm:"type:varchar(8)" json:"emoji"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Family      Family             `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Redemptions []RewardRedemption `gorm:"foreignKey:RewardID" json:"-"`
}
