package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleTeamMember UserRole = "team_member"
	UserRoleClient     UserRole = "client"
)

var AllUserRoles = []UserRole{UserRoleAdmin, UserRoleTeamMember, UserRoleClient}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleTeamMember, UserRoleClient:
		return true
	}
	return false
}

// Staff reports whether the role belongs to the studio rather than a client.
func (r UserRole) Staff() bool {
	switch r {
	case UserRoleAdmin, UserRoleTeamMember:
		return true
	case UserRoleClient:
		return false
	}
	return false
}

var ErrNegativeXP = errors.New("xp points cannot be negative")

type User struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"type:varchar(255);not null;default:''" json:"full_name"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'team_member'" json:"role"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	XPPoints  int       `gorm:"not null;default:0" json:"xp_points"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Badges []UserBadge `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return u.Validate()
}

func (u *User) Validate() error {
	if u.XPPoints < 0 {
		return ErrNegativeXP
	}
	return nil
}

func (u User) Level() int {
	return Level(u.XPPoints)
}

func (u User) LevelProgress() int {
	return LevelProgress(u.XPPoints)
}
