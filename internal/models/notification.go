package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

var AllNotificationTypes = []NotificationType{NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError}

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	}
	return false
}

type Notification struct {
	ID        string           `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    string           `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	Read      bool             `gorm:"not null;default:false" json:"read"`
	Link      *string          `gorm:"type:text" json:"link,omitempty"`
	CreatedAt time.Time        `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	assignID(&n.ID)
	return nil
}
