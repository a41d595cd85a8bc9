package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID    *string   `gorm:"type:varchar(36);index" json:"project_id,omitempty"`
	AssetID      *string   `gorm:"type:varchar(36);index" json:"asset_id,omitempty"`
	TaskID       *string   `gorm:"type:varchar(36);index" json:"task_id,omitempty"`
	UserID       string    `gorm:"type:varchar(36);not null" json:"user_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ParentID     *string   `gorm:"type:varchar(36)" json:"parent_id,omitempty"`
	PinX         *float64  `json:"pin_x,omitempty"`
	PinY         *float64  `json:"pin_y,omitempty"`
	PinTimestamp *float64  `json:"pin_timestamp,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Author  User     `gorm:"foreignKey:UserID" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Asset   *Asset   `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"-"`
	Task    *Task    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Parent  *Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// Pinned reports whether any anchor is present. A lone coordinate counts.
func (c Comment) Pinned() bool {
	return c.PinX != nil || c.PinY != nil || c.PinTimestamp != nil
}
