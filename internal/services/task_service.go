package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrSubtaskNotFound        = errors.New("subtask not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrTitleEmpty             = errors.New("title cannot be empty")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
	ErrInvalidTaskPriority    = errors.New("invalid task priority")
	ErrInvalidTaskAssignee    = errors.New("assignee does not exist")
	ErrNegativeHours          = errors.New("hours cannot be negative")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo      repository.TaskRepository
	projectRepo   repository.ProjectRepository
	userRepo      repository.UserRepository
	activity      *ActivityService
	notifications *NotificationService
	aiService     *AIService
}

// NewTaskService creates a new TaskService. activity, notifications and
// aiService may be nil.
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	activity *ActivityService,
	notifications *NotificationService,
	aiService *AIService,
) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		activity:      activity,
		notifications: notifications,
		aiService:     aiService,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	AssignedToMe bool
	ProjectID    *string
	Status       *models.TaskStatus
	Page         int
	PageSize     int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID      string
	Title          string
	Description    *string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	AssignedTo     *string
	EstimatedHours *float64
	Deadline       *time.Time
	OrderIndex     int
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	AssignedTo     *string
	ClearAssignee  bool
	EstimatedHours *float64
	BillableHours  *float64
	Deadline       *time.Time
	ClearDeadline  bool
	OrderIndex     *int
}

// ListTasks returns tasks newest first with project and assignee
func (s *TaskService) ListTasks(ctx context.Context, sess Session, input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidTaskStatus
	}

	filter := repository.TaskFilter{
		ProjectID: input.ProjectID,
		Status:    input.Status,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}
	if input.AssignedToMe {
		filter.AssignedTo = &sess.UserID
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, "Project", "Assignee", "Subtasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a new task in a project
func (s *TaskService) CreateTask(ctx context.Context, sess Session, input CreateTaskInput) (*models.Task, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidTaskPriority
	}
	if input.EstimatedHours != nil && *input.EstimatedHours < 0 {
		return nil, ErrNegativeHours
	}

	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if err := s.ensureAssignee(ctx, input.AssignedTo); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:      input.ProjectID,
		Title:          title,
		Description:    input.Description,
		Status:         input.Status,
		Priority:       input.Priority,
		AssignedTo:     input.AssignedTo,
		EstimatedHours: input.EstimatedHours,
		Deadline:       input.Deadline,
		OrderIndex:     input.OrderIndex,
		CreatedBy:      sess.UserID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if task.AssignedTo != nil {
		s.notifyAssignee(ctx, task)
	}

	return s.GetTask(ctx, task.ID)
}

// UpdateTask updates an existing task. Any status may replace any other.
func (s *TaskService) UpdateTask(ctx context.Context, sess Session, taskID string, input UpdateTaskInput) (*models.Task, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	previousStatus := task.Status
	previousAssignee := task.AssignedTo

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		if !task.Status.CanTransitionTo(*input.Status) {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidTaskPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearAssignee {
		task.AssignedTo = nil
	} else if input.AssignedTo != nil {
		if err := s.ensureAssignee(ctx, input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}
	if input.EstimatedHours != nil {
		if *input.EstimatedHours < 0 {
			return nil, ErrNegativeHours
		}
		task.EstimatedHours = input.EstimatedHours
	}
	if input.BillableHours != nil {
		if *input.BillableHours < 0 {
			return nil, ErrNegativeHours
		}
		task.BillableHours = input.BillableHours
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.OrderIndex != nil {
		task.OrderIndex = *input.OrderIndex
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if task.Status != previousStatus {
		s.activity.recordQuietly(ctx, sess, RecordActivityInput{
			Type:       models.ActivityTaskUpdate,
			EntityType: entity(models.EntityTask),
			EntityID:   &task.ID,
			Metadata: map[string]interface{}{
				"title": task.Title,
				"from":  previousStatus,
				"to":    task.Status,
			},
		})
	}
	if task.AssignedTo != nil && (previousAssignee == nil || *previousAssignee != *task.AssignedTo) {
		s.notifyAssignee(ctx, task)
	}

	return s.GetTask(ctx, task.ID)
}

// DeleteTask deletes a task and its subtasks
func (s *TaskService) DeleteTask(ctx context.Context, sess Session, taskID string) error {
	if err := sess.requireWork(); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CreateSubtask adds a checklist item to a task
func (s *TaskService) CreateSubtask(ctx context.Context, sess Session, taskID, title string) (*models.Subtask, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	subtask := &models.Subtask{TaskID: taskID, Title: title}
	if err := s.taskRepo.CreateSubtask(ctx, subtask); err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}
	return subtask, nil
}

// ToggleSubtask flips the completed flag of one of a task's subtasks
func (s *TaskService) ToggleSubtask(ctx context.Context, sess Session, taskID, subtaskID string) (*models.Subtask, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	subtask, err := s.taskRepo.FindSubtask(ctx, subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubtaskNotFound
		}
		return nil, fmt.Errorf("failed to find subtask: %w", err)
	}
	if subtask.TaskID != taskID {
		return nil, ErrSubtaskNotFound
	}

	subtask.Completed = !subtask.Completed
	if err := s.taskRepo.SetSubtaskCompleted(ctx, subtask.ID, subtask.Completed); err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}
	return subtask, nil
}

// DraftTasks asks the AI service for task suggestions from a client brief.
// Nothing is persisted.
func (s *TaskService) DraftTasks(ctx context.Context, sess Session, projectID, brief string) ([]DraftedTask, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(brief) == "" {
		return nil, ErrInvalidInput
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	drafts, err := s.aiService.DraftTasksFromBrief(ctx, project.Name, brief)
	if err != nil {
		return nil, fmt.Errorf("failed to draft tasks: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	return drafts, nil
}

func (s *TaskService) ensureAssignee(ctx context.Context, userID *string) error {
	if userID == nil {
		return nil
	}
	if _, err := s.userRepo.FindByID(ctx, *userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidTaskAssignee
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	return nil
}

func (s *TaskService) notifyAssignee(ctx context.Context, task *models.Task) {
	if s.notifications == nil {
		return
	}

	link := "/projects/" + task.ProjectID
	_, err := s.notifications.Notify(ctx, NotifyInput{
		UserID:  *task.AssignedTo,
		Title:   "New task assigned",
		Message: fmt.Sprintf("You have been assigned to %q", task.Title),
		Type:    models.NotificationInfo,
		Link:    &link,
	})
	if err != nil {
		log.Printf("[tasks] assignment notification failed: %v", err)
	}
}
