package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusArchived  ProjectStatus = "archived"
	ProjectStatusCompleted ProjectStatus = "completed"
)

var AllProjectStatuses = []ProjectStatus{ProjectStatusActive, ProjectStatusArchived, ProjectStatusCompleted}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusArchived, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID            string        `gorm:"type:varchar(36);primarykey" json:"id"`
	Name          string        `gorm:"type:varchar(255);not null" json:"name"`
	Description   *string       `gorm:"type:text" json:"description,omitempty"`
	ClientID      *string       `gorm:"type:varchar(36);index" json:"client_id,omitempty"`
	Status        ProjectStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	StartDate     *time.Time    `json:"start_date,omitempty"`
	Deadline      *time.Time    `json:"deadline,omitempty"`
	Budget        *float64      `json:"budget,omitempty"`
	CreatedBy     string        `gorm:"type:varchar(36);not null" json:"created_by"`
	RevisionCount int           `gorm:"not null;default:0" json:"revision_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations
	Client  *User           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Creator User            `gorm:"foreignKey:CreatedBy" json:"-"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
	MemberRoleViewer MemberRole = "viewer"
)

var AllMemberRoles = []MemberRole{MemberRoleOwner, MemberRoleMember, MemberRoleViewer}

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleMember, MemberRoleViewer:
		return true
	}
	return false
}

type ProjectMember struct {
	ID        string     `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_member" json:"project_id"`
	UserID    string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_member" json:"user_id"`
	Role      MemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	AddedAt   time.Time  `gorm:"autoCreateTime" json:"added_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}
