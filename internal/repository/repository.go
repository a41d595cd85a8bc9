package repository

import (
	"context"
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateFullName changes a user's display name
	UpdateFullName(ctx context.Context, id, fullName string) error

	// ListActiveByXP lists active users ordered by experience points, highest first
	ListActiveByXP(ctx context.Context) ([]models.User, error)

	// ListByRole lists users with the given role ordered by name
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error

	// List retrieves projects newest first
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)

	// ListByStatusByName retrieves projects with a status ordered by name
	ListByStatusByName(ctx context.Context, status models.ProjectStatus) ([]models.Project, error)

	// CountByStatus counts projects with the given status
	CountByStatus(ctx context.Context, status models.ProjectStatus) (int64, error)

	// AddMember adds a user to a project
	AddMember(ctx context.Context, member *models.ProjectMember) error

	// ListMembers lists project members in the order they joined
	ListMembers(ctx context.Context, projectID string) ([]models.ProjectMember, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Status   *models.ProjectStatus
	ClientID *string
	Limit    int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id string, preload ...string) (*models.Task, error)

	// List retrieves tasks newest first with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// ListBoard retrieves a project's tasks in manual order
	ListBoard(ctx context.Context, projectID string) ([]models.Task, error)

	// ListUpcoming retrieves tasks with a deadline, soonest first
	ListUpcoming(ctx context.Context, limit int) ([]models.Task, error)

	// Count counts all tasks
	Count(ctx context.Context) (int64, error)

	// CountDueBy counts unfinished tasks whose deadline is at or before until
	CountDueBy(ctx context.Context, until time.Time) (int64, error)

	// Update updates a task
	Update(ctx context.Context, task *models.Task) error

	// Delete deletes a task and its subtasks
	Delete(ctx context.Context, id string) error

	CreateSubtask(ctx context.Context, subtask *models.Subtask) error
	FindSubtask(ctx context.Context, id string) (*models.Subtask, error)
	SetSubtaskCompleted(ctx context.Context, id string, completed bool) error
	ListSubtasks(ctx context.Context, taskID string) ([]models.Subtask, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID  *string
	AssignedTo *string
	Status     *models.TaskStatus
	Page       int
	PageSize   int
}

// AssetRepository defines the interface for asset data access
type AssetRepository interface {
	// Create inserts an asset together with its first version snapshot
	Create(ctx context.Context, asset *models.Asset) error

	FindByID(ctx context.Context, id string) (*models.Asset, error)

	// List retrieves assets in one folder (or the root) newest first
	List(ctx context.Context, filter AssetFilter) ([]models.Asset, error)

	// AddVersion records a new upload against an existing asset
	AddVersion(ctx context.Context, assetID string, upload VersionUpload) (*models.Asset, error)

	// ListVersions lists an asset's history, oldest first
	ListVersions(ctx context.Context, assetID string) ([]models.AssetVersion, error)
}

// AssetFilter holds filtering options for listing assets. A nil FolderID
// selects assets at the root.
type AssetFilter struct {
	ProjectID *string
	FolderID  *string
}

// VersionUpload describes the file replacing an asset's current one
type VersionUpload struct {
	FileURL            string
	FileType           string
	FileSize           int64
	UploadedBy         string
	ChangesDescription *string
}

// FolderRepository defines the interface for folder data access
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	FindByID(ctx context.Context, id string) (*models.Folder, error)

	// List retrieves the children of a folder (or root folders) by name
	List(ctx context.Context, filter FolderFilter) ([]models.Folder, error)

	// SetParent moves a folder under another folder, or to the root when parentID is nil
	SetParent(ctx context.Context, id string, parentID *string) error
}

// FolderFilter holds filtering options for listing folders. A nil ParentID
// selects root folders.
type FolderFilter struct {
	ProjectID *string
	ParentID  *string
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(ctx context.Context, id string) (*models.Comment, error)

	// List retrieves comments newest first with author, project and asset
	List(ctx context.Context, filter CommentFilter) ([]models.Comment, error)
}

// CommentFilter holds filtering options for listing comments
type CommentFilter struct {
	ProjectID *string
	AssetID   *string
}

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	// Create inserts an invoice and its line items
	Create(ctx context.Context, invoice *models.Invoice) error

	// FindByID finds an invoice with client, project and items
	FindByID(ctx context.Context, id string) (*models.Invoice, error)

	// List retrieves invoices newest first
	List(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error)

	// UpdateStatus sets an invoice status directly
	UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) error

	// SumTotal sums invoice totals for the given statuses
	SumTotal(ctx context.Context, statuses []models.InvoiceStatus, clientID *string) (float64, error)

	// NextSequence reserves the next invoice counter for a year
	NextSequence(ctx context.Context, year int) (int, error)
}

// InvoiceFilter holds filtering options for listing invoices
type InvoiceFilter struct {
	Status   *models.InvoiceStatus
	ClientID *string
}

// ActivityRepository defines the interface for team activity data access.
// The log is append-only.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.TeamActivity) error
	ListRecent(ctx context.Context, limit int) ([]models.TeamActivity, error)
}

// BadgeRepository defines the interface for badge data access
type BadgeRepository interface {
	ListBadges(ctx context.Context) ([]models.Badge, error)
	ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error)

	// Award grants badges to a user, ignoring ones already held
	Award(ctx context.Context, userID string, badgeIDs []string) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)

	// MarkRead marks a notification read; it returns gorm.ErrRecordNotFound if
	// the notification does not belong to the user
	MarkRead(ctx context.Context, id, userID string) error
}
