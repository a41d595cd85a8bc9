package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAssetNotFound     = errors.New("asset not found")
	ErrNoFilesProvided   = errors.New("at least one file is required")
	ErrFileURLRequired   = errors.New("file url is required")
	ErrNegativeFileSize  = errors.New("file size cannot be negative")
	ErrFolderWrongParent = errors.New("folder belongs to a different project")
)

// AssetService handles project files and their version history
type AssetService struct {
	assetRepo   repository.AssetRepository
	projectRepo repository.ProjectRepository
	folderRepo  repository.FolderRepository
	activity    *ActivityService
}

// NewAssetService creates a new AssetService
func NewAssetService(assetRepo repository.AssetRepository, projectRepo repository.ProjectRepository, folderRepo repository.FolderRepository, activity *ActivityService) *AssetService {
	return &AssetService{
		assetRepo:   assetRepo,
		projectRepo: projectRepo,
		folderRepo:  folderRepo,
		activity:    activity,
	}
}

// FileUpload describes a file already stored by the blob store
type FileUpload struct {
	Name         string
	FileURL      string
	FileType     string
	FileSize     int64
	ThumbnailURL *string
}

// UploadAssetsInput represents input for a multi-file upload
type UploadAssetsInput struct {
	ProjectID string
	FolderID  *string
	Files     []FileUpload
}

// UploadVersionInput represents input for replacing an asset's file
type UploadVersionInput struct {
	File               FileUpload
	ChangesDescription *string
}

// AssetView is an asset with its project name and a readable size
type AssetView struct {
	models.Asset
	ProjectName string `json:"project_name"`
	SizeLabel   string `json:"size_label"`
}

// ListAssets returns the assets in a folder, or at the root when folderID is
// nil, newest first.
func (s *AssetService) ListAssets(ctx context.Context, projectID, folderID *string) ([]AssetView, error) {
	assets, err := s.assetRepo.List(ctx, repository.AssetFilter{ProjectID: projectID, FolderID: folderID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	views := make([]AssetView, len(assets))
	for i, a := range assets {
		views[i] = NewAssetView(a)
	}
	return views, nil
}

// NewAssetView labels an asset with its project name and readable size
func NewAssetView(a models.Asset) AssetView {
	return AssetView{
		Asset:       a,
		ProjectName: a.Project.Name,
		SizeLabel:   humanize.Bytes(uint64(a.FileSize)),
	}
}

// UploadAssets inserts one asset per file. Files are inserted independently:
// if one fails, the ones before it stay and the error reports how many were
// stored.
func (s *AssetService) UploadAssets(ctx context.Context, sess Session, input UploadAssetsInput) ([]models.Asset, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}
	if len(input.Files) == 0 {
		return nil, ErrNoFilesProvided
	}
	for _, f := range input.Files {
		if err := validateUpload(f); err != nil {
			return nil, err
		}
	}

	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if input.FolderID != nil {
		if err := s.ensureFolderInProject(ctx, *input.FolderID, input.ProjectID); err != nil {
			return nil, err
		}
	}

	created := make([]models.Asset, 0, len(input.Files))
	for _, f := range input.Files {
		asset := models.Asset{
			ProjectID:    input.ProjectID,
			FolderID:     input.FolderID,
			Name:         f.Name,
			FileURL:      f.FileURL,
			FileType:     f.FileType,
			FileSize:     f.FileSize,
			ThumbnailURL: f.ThumbnailURL,
			UploadedBy:   sess.UserID,
		}
		if err := s.assetRepo.Create(ctx, &asset); err != nil {
			return created, fmt.Errorf("failed to upload %s after %d of %d files: %w", f.Name, len(created), len(input.Files), err)
		}
		created = append(created, asset)

		s.activity.recordQuietly(ctx, sess, RecordActivityInput{
			Type:       models.ActivityUpload,
			EntityType: entity(models.EntityAsset),
			EntityID:   &asset.ID,
			Metadata:   map[string]interface{}{"name": asset.Name, "version": asset.Version},
		})
	}

	return created, nil
}

// UploadAssetVersion replaces an asset's file with a new version
func (s *AssetService) UploadAssetVersion(ctx context.Context, sess Session, assetID string, input UploadVersionInput) (*models.Asset, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}
	if err := validateUpload(input.File); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.AddVersion(ctx, assetID, repository.VersionUpload{
		FileURL:            input.File.FileURL,
		FileType:           input.File.FileType,
		FileSize:           input.File.FileSize,
		UploadedBy:         sess.UserID,
		ChangesDescription: input.ChangesDescription,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to upload asset version: %w", err)
	}

	s.activity.recordQuietly(ctx, sess, RecordActivityInput{
		Type:       models.ActivityUpload,
		EntityType: entity(models.EntityAsset),
		EntityID:   &asset.ID,
		Metadata:   map[string]interface{}{"name": asset.Name, "version": asset.Version},
	})

	return asset, nil
}

// ListVersions returns an asset's history, oldest first
func (s *AssetService) ListVersions(ctx context.Context, assetID string) ([]models.AssetVersion, error) {
	if _, err := s.assetRepo.FindByID(ctx, assetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}

	versions, err := s.assetRepo.ListVersions(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset versions: %w", err)
	}
	return versions, nil
}

func (s *AssetService) ensureFolderInProject(ctx context.Context, folderID, projectID string) error {
	folder, err := s.folderRepo.FindByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFolderNotFound
		}
		return fmt.Errorf("failed to find folder: %w", err)
	}
	if folder.ProjectID != projectID {
		return ErrFolderWrongParent
	}
	return nil
}

func validateUpload(f FileUpload) error {
	if strings.TrimSpace(f.FileURL) == "" {
		return ErrFileURLRequired
	}
	if strings.TrimSpace(f.Name) == "" {
		return ErrInvalidInput
	}
	if f.FileSize < 0 {
		return ErrNegativeFileSize
	}
	return nil
}
