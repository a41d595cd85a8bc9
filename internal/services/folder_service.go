package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrFolderNotFound     = errors.New("folder not found")
	ErrFolderNameRequired = errors.New("folder name is required")
)

// FolderService handles the per-project folder tree
type FolderService struct {
	folderRepo  repository.FolderRepository
	projectRepo repository.ProjectRepository
}

// NewFolderService creates a new FolderService
func NewFolderService(folderRepo repository.FolderRepository, projectRepo repository.ProjectRepository) *FolderService {
	return &FolderService{
		folderRepo:  folderRepo,
		projectRepo: projectRepo,
	}
}

// CreateFolderInput represents input for creating a folder
type CreateFolderInput struct {
	ProjectID string
	Name      string
	ParentID  *string
}

// ListFolders returns the children of parentID, or root folders when nil, by name
func (s *FolderService) ListFolders(ctx context.Context, projectID, parentID *string) ([]models.Folder, error) {
	folders, err := s.folderRepo.List(ctx, repository.FolderFilter{ProjectID: projectID, ParentID: parentID})
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// CreateFolder creates a folder. The parent, when given, must be in the same project.
func (s *FolderService) CreateFolder(ctx context.Context, sess Session, input CreateFolderInput) (*models.Folder, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrFolderNameRequired
	}

	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if input.ParentID != nil {
		parent, err := s.findFolder(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ProjectID != input.ProjectID {
			return nil, ErrFolderWrongParent
		}
	}

	folder := &models.Folder{
		ProjectID: input.ProjectID,
		Name:      name,
		ParentID:  input.ParentID,
		CreatedBy: sess.UserID,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, models.ErrFolderCycle) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// MoveFolder re-parents a folder, or moves it to the root when parentID is
// nil. Moving a folder under itself or a descendant fails with ErrFolderCycle.
func (s *FolderService) MoveFolder(ctx context.Context, sess Session, folderID string, parentID *string) (*models.Folder, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	folder, err := s.findFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.findFolder(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ProjectID != folder.ProjectID {
			return nil, ErrFolderWrongParent
		}
		if err := s.ensureNotDescendant(ctx, folder.ID, parent); err != nil {
			return nil, err
		}
	}

	if err := s.folderRepo.SetParent(ctx, folder.ID, parentID); err != nil {
		return nil, fmt.Errorf("failed to move folder: %w", err)
	}
	folder.ParentID = parentID
	return folder, nil
}

// ensureNotDescendant walks up from candidate to the root and fails if it
// meets folderID.
func (s *FolderService) ensureNotDescendant(ctx context.Context, folderID string, candidate *models.Folder) error {
	seen := make(map[string]bool)
	current := candidate
	for {
		if current.ID == folderID {
			return models.ErrFolderCycle
		}
		if current.ParentID == nil || seen[current.ID] {
			return nil
		}
		seen[current.ID] = true

		next, err := s.findFolder(ctx, *current.ParentID)
		if err != nil {
			return err
		}
		current = next
	}
}

func (s *FolderService) findFolder(ctx context.Context, id string) (*models.Folder, error) {
	folder, err := s.folderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to find folder: %w", err)
	}
	return folder, nil
}
