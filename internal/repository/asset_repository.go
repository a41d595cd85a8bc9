package repository

import (
	"context"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssetRepository is a GORM implementation of AssetRepository
type GormAssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &GormAssetRepository{db: db}
}

// Create inserts an asset together with its first version snapshot
func (r *GormAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	asset.Version = models.FirstAssetVersion

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(asset).Error; err != nil {
			return err
		}

		snapshot := asset.Snapshot(nil)
		return tx.Omit(clause.Associations).Create(&snapshot).Error
	})
}

func (r *GormAssetRepository) FindByID(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// List retrieves assets in one folder (or the root) newest first
func (r *GormAssetRepository) List(ctx context.Context, filter AssetFilter) ([]models.Asset, error) {
	var assets []models.Asset

	query := r.db.WithContext(ctx).Model(&models.Asset{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.FolderID != nil {
		query = query.Where("folder_id = ?", *filter.FolderID)
	} else {
		query = query.Where("folder_id IS NULL")
	}

	err := query.Preload("Project").Order("created_at DESC").Find(&assets).Error
	return assets, err
}

// AddVersion bumps the asset's version, points it at the new file, appends
// the history snapshot and counts a revision on the project, atomically.
func (r *GormAssetRepository) AddVersion(ctx context.Context, assetID string, upload VersionUpload) (*models.Asset, error) {
	var asset models.Asset

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// incremented in SQL so concurrent uploads never share a version
		result := tx.Model(&models.Asset{}).
			Where("id = ?", assetID).
			Updates(map[string]interface{}{
				"version":     gorm.Expr("version + ?", 1),
				"file_url":    upload.FileURL,
				"file_type":   upload.FileType,
				"file_size":   upload.FileSize,
				"uploaded_by": upload.UploadedBy,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("id = ?", assetID).First(&asset).Error; err != nil {
			return err
		}

		snapshot := asset.Snapshot(upload.ChangesDescription)
		if err := tx.Omit(clause.Associations).Create(&snapshot).Error; err != nil {
			return err
		}

		return tx.Model(&models.Project{}).
			Where("id = ?", asset.ProjectID).
			UpdateColumn("revision_count", gorm.Expr("revision_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// ListVersions lists an asset's history, oldest first
func (r *GormAssetRepository) ListVersions(ctx context.Context, assetID string) ([]models.AssetVersion, error) {
	var versions []models.AssetVersion
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).Order("version ASC").Find(&versions).Error
	return versions, err
}
