package models

import (
	"time"

	"gorm.io/gorm"
)

type Asset struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID    string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	FolderID     *string   `gorm:"type:varchar(36);index" json:"folder_id,omitempty"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	FileURL      string    `gorm:"type:text;not null" json:"file_url"`
	FileType     string    `gorm:"type:varchar(255);not null;default:''" json:"file_type"`
	FileSize     int64     `gorm:"not null;default:0" json:"file_size"`
	Version      int       `gorm:"not null;default:1" json:"version"`
	ThumbnailURL *string   `gorm:"type:text" json:"thumbnail_url,omitempty"`
	UploadedBy   string    `gorm:"type:varchar(36);not null" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Project  Project        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Folder   *Folder        `gorm:"foreignKey:FolderID;constraint:OnDelete:SET NULL" json:"-"`
	Uploader User           `gorm:"foreignKey:UploadedBy" json:"-"`
	Versions []AssetVersion `gorm:"foreignKey:AssetID" json:"-"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	if a.Version == 0 {
		a.Version = FirstAssetVersion
	}
	return nil
}

// Snapshot returns the version history row describing the asset's current file.
func (a Asset) Snapshot(changes *string) AssetVersion {
	return AssetVersion{
		AssetID:            a.ID,
		Version:            a.Version,
		FileURL:            a.FileURL,
		UploadedBy:         a.UploadedBy,
		ChangesDescription: changes,
	}
}

type AssetVersion struct {
	ID                 string    `gorm:"type:varchar(36);primarykey" json:"id"`
	AssetID            string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_asset_version" json:"asset_id"`
	Version            int       `gorm:"not null;uniqueIndex:idx_asset_version" json:"version"`
	FileURL            string    `gorm:"type:text;not null" json:"file_url"`
	UploadedBy         string    `gorm:"type:varchar(36);not null" json:"uploaded_by"`
	ChangesDescription *string   `gorm:"type:text" json:"changes_description,omitempty"`
	CreatedAt          time.Time `json:"created_at"`

	Asset Asset `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"-"`
}

func (v *AssetVersion) BeforeCreate(tx *gorm.DB) error {
	assignID(&v.ID)
	return nil
}
