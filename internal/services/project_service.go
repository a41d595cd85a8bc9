package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidMemberRole    = errors.New("invalid member role")
	ErrNotAClient           = errors.New("client must be a user with the client role")
)

// ProjectService handles projects, their members and the task board
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description *string
	ClientID    *string
	Status      models.ProjectStatus
	StartDate   *time.Time
	Deadline    *time.Time
	Budget      *float64
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Name        *string
	Description *string
	ClientID    *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	Deadline    *time.Time
	Budget      *float64
}

// BoardColumn is one status column of the task board
type BoardColumn struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []models.Task     `json:"tasks"`
}

// BoardView is the project detail page model
type BoardView struct {
	Project models.Project `json:"project"`
	Columns []BoardColumn  `json:"columns"`
}

// ListProjects returns projects newest first. Clients only see projects they
// are the client of.
func (s *ProjectService) ListProjects(ctx context.Context, sess Session, status *models.ProjectStatus) ([]models.Project, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	filter := repository.ProjectFilter{Status: status}
	if sess.IsClient() {
		filter.ClientID = &sess.UserID
	}

	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListActiveProjects returns active projects by name for pickers.
func (s *ProjectService) ListActiveProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByStatusByName(ctx, models.ProjectStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project visible to the caller.
func (s *ProjectService) GetProject(ctx context.Context, sess Session, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if sess.IsClient() && (project.ClientID == nil || *project.ClientID != sess.UserID) {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// Board returns a project's tasks grouped into status columns in board order.
// Every column is present even when empty.
func (s *ProjectService) Board(ctx context.Context, sess Session, projectID string) (*BoardView, error) {
	project, err := s.GetProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListBoard(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list board tasks: %w", err)
	}

	return &BoardView{
		Project: *project,
		Columns: BoardColumns(tasks),
	}, nil
}

// BoardColumns groups tasks by status in the fixed column order, keeping the
// input order inside each column.
func BoardColumns(tasks []models.Task) []BoardColumn {
	byStatus := make(map[string][]models.Task)
	for _, g := range GroupBy(tasks, func(t models.Task) string { return string(t.Status) }) {
		byStatus[g.Key] = g.Items
	}

	columns := make([]BoardColumn, len(models.AllTaskStatuses))
	for i, status := range models.AllTaskStatuses {
		items := byStatus[string(status)]
		if items == nil {
			items = []models.Task{}
		}
		columns[i] = BoardColumn{Status: status, Tasks: items}
	}
	return columns
}

// CreateProject creates a project owned by the caller
func (s *ProjectService) CreateProject(ctx context.Context, sess Session, input CreateProjectInput) (*models.Project, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}
	if input.Status == "" {
		input.Status = models.ProjectStatusActive
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}
	if err := s.ensureClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		ClientID:    input.ClientID,
		Status:      input.Status,
		StartDate:   input.StartDate,
		Deadline:    input.Deadline,
		Budget:      input.Budget,
		CreatedBy:   sess.UserID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	owner := &models.ProjectMember{ProjectID: project.ID, UserID: sess.UserID, Role: models.MemberRoleOwner}
	if err := s.projectRepo.AddMember(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to add project owner: %w", err)
	}

	return project, nil
}

// UpdateProject updates an existing project
func (s *ProjectService) UpdateProject(ctx context.Context, sess Session, id string, input UpdateProjectInput) (*models.Project, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = input.Description
	}
	if input.ClientID != nil {
		if err := s.ensureClient(ctx, input.ClientID); err != nil {
			return nil, err
		}
		project.ClientID = input.ClientID
		project.Client = nil
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = *input.Status
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.Deadline != nil {
		project.Deadline = input.Deadline
	}
	if input.Budget != nil {
		project.Budget = input.Budget
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// AddMember adds a user to a project with a membership role
func (s *ProjectService) AddMember(ctx context.Context, sess Session, projectID, userID string, role models.MemberRole) (*models.ProjectMember, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}
	if role == "" {
		role = models.MemberRoleMember
	}
	if !role.Valid() {
		return nil, ErrInvalidMemberRole
	}

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	member := &models.ProjectMember{ProjectID: projectID, UserID: userID, Role: role}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add project member: %w", err)
	}
	return member, nil
}

// ListMembers lists a project's members in join order
func (s *ProjectService) ListMembers(ctx context.Context, sess Session, projectID string) ([]models.ProjectMember, error) {
	if _, err := s.GetProject(ctx, sess, projectID); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}

func (s *ProjectService) ensureClient(ctx context.Context, clientID *string) error {
	if clientID == nil {
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, *clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAClient
		}
		return fmt.Errorf("failed to find client: %w", err)
	}
	if user.Role != models.UserRoleClient {
		return ErrNotAClient
	}
	return nil
}
