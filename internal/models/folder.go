package models

import (
	"time"

	"gorm.io/gorm"
)

type Folder struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	ParentID  *string   `gorm:"type:varchar(36);index" json:"parent_id,omitempty"`
	CreatedBy string    `gorm:"type:varchar(36);not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Parent  *Folder `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	if f.ParentID != nil && *f.ParentID == f.ID {
		return ErrFolderCycle
	}
	return nil
}
