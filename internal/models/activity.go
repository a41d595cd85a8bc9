package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityTaskUpdate ActivityType = "task_update"
	ActivityComment    ActivityType = "comment"
	ActivityUpload     ActivityType = "upload"
	ActivityLogin      ActivityType = "login"
	ActivityLogout     ActivityType = "logout"
)

var AllActivityTypes = []ActivityType{ActivityTaskUpdate, ActivityComment, ActivityUpload, ActivityLogin, ActivityLogout}

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTaskUpdate, ActivityComment, ActivityUpload, ActivityLogin, ActivityLogout:
		return true
	}
	return false
}

type ActivityEntityType string

const (
	EntityTask    ActivityEntityType = "task"
	EntityProject ActivityEntityType = "project"
	EntityAsset   ActivityEntityType = "asset"
)

var AllActivityEntityTypes = []ActivityEntityType{EntityTask, EntityProject, EntityAsset}

func (t ActivityEntityType) Valid() bool {
	switch t {
	case EntityTask, EntityProject, EntityAsset:
		return true
	}
	return false
}

// TeamActivity is append-only.
type TeamActivity struct {
	ID           string              `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       string              `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ActivityType ActivityType        `gorm:"type:varchar(20);not null" json:"activity_type"`
	EntityType   *ActivityEntityType `gorm:"type:varchar(20)" json:"entity_type,omitempty"`
	EntityID     *string             `gorm:"type:varchar(36)" json:"entity_id,omitempty"`
	Metadata     datatypes.JSON      `json:"metadata,omitempty"`
	CreatedAt    time.Time           `gorm:"index" json:"created_at"`

	Actor User `gorm:"foreignKey:UserID" json:"-"`
}

func (TeamActivity) TableName() string {
	return "team_activity"
}

func (a *TeamActivity) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}
