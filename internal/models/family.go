package models

import (
	"time"
)

type Family struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Members []User   `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
	Rewards []Reward `gorm:"foreignKey:FamilyID" json:"rewards,omitempty"`
}
