package repository

import (
	"context"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFolderRepository is a GORM implementation of FolderRepository
type GormFolderRepository struct {
	db *gorm.DB
}

// NewFolderRepository creates a new FolderRepository
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(folder).Error
}

func (r *GormFolderRepository) FindByID(ctx context.Context, id string) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

// List retrieves the children of a folder (or root folders) by name
func (r *GormFolderRepository) List(ctx context.Context, filter FolderFilter) ([]models.Folder, error) {
	var folders []models.Folder

	query := r.db.WithContext(ctx).Model(&models.Folder{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	err := query.Order("name ASC").Find(&folders).Error
	return folders, err
}

// SetParent moves a folder under another folder, or to the root when parentID is nil
func (r *GormFolderRepository) SetParent(ctx context.Context, id string, parentID *string) error {
	result := r.db.WithContext(ctx).Model(&models.Folder{}).Where("id = ?", id).Update("parent_id", parentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
