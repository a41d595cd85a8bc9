package dto

import (
	"time"

	"github.com/yukikurage/studio-ops-api/internal/services"
)

// AssetDTO represents an asset in API responses
type AssetDTO struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	ProjectName  string    `json:"project_name"`
	FolderID     *string   `json:"folder_id,omitempty"`
	Name         string    `json:"name"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	SizeLabel    string    `json:"size_label"`
	Version      int       `json:"version"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToAssetDTO(v services.AssetView) AssetDTO {
	return AssetDTO{
		ID:           v.ID,
		ProjectID:    v.ProjectID,
		ProjectName:  v.ProjectName,
		FolderID:     v.FolderID,
		Name:         v.Name,
		FileURL:      v.FileURL,
		FileType:     v.FileType,
		FileSize:     v.FileSize,
		SizeLabel:    v.SizeLabel,
		Version:      v.Version,
		ThumbnailURL: v.ThumbnailURL,
		UploadedBy:   v.UploadedBy,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func ToAssetDTOs(views []services.AssetView) []AssetDTO {
	out := make([]AssetDTO, len(views))
	for i, v := range views {
		out[i] = ToAssetDTO(v)
	}
	return out
}
