package models

import (
	"time"

	"gorm.io/gorm"
)

type Badge struct {
	ID          string `gorm:"type:varchar(36);primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Icon        string `gorm:"type:varchar(64);not null;default:''" json:"icon"`
	XPRequired  int    `gorm:"not null;default:0" json:"xp_required"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

type UserBadge struct {
	ID       string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	EarnedAt time.Time `gorm:"autoCreateTime" json:"earned_at"`

	Badge Badge `gorm:"foreignKey:BadgeID;constraint:OnDelete:CASCADE" json:"badge,omitempty"`
}

func (b *UserBadge) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}
