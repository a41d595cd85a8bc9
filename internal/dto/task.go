package dto

import (
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             string              `json:"id"`
	ProjectID      string              `json:"project_id"`
	ProjectName    string              `json:"project_name,omitempty"`
	Title          string              `json:"title"`
	Description    *string             `json:"description,omitempty"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	Assignee       *UserSummaryDTO     `json:"assignee,omitempty"`
	EstimatedHours *float64            `json:"estimated_hours,omitempty"`
	BillableHours  *float64            `json:"billable_hours,omitempty"`
	Deadline       *time.Time          `json:"deadline,omitempty"`
	OrderIndex     int                 `json:"order_index"`
	CreatedBy      string              `json:"created_by"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Subtasks       []models.Subtask    `json:"subtasks,omitempty"`
}

// TaskListResponse represents a list of tasks, paginated when requested
type TaskListResponse struct {
	Tasks      []TaskDTO                 `json:"tasks"`
	Pagination *utils.PaginationResponse `json:"pagination,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO. Relations are included when preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:             task.ID,
		ProjectID:      task.ProjectID,
		ProjectName:    task.Project.Name,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		Assignee:       ToUserSummaryDTO(task.Assignee),
		EstimatedHours: task.EstimatedHours,
		BillableHours:  task.BillableHours,
		Deadline:       task.Deadline,
		OrderIndex:     task.OrderIndex,
		CreatedBy:      task.CreatedBy,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
		Subtasks:       task.Subtasks,
	}
}

func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}
