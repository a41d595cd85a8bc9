package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
	"github.com/yukikurage/studio-ops-api/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks returns tasks newest first. mine=true limits the list to the
// caller's assignments; page/limit paginate when present.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	input := services.ListTasksInput{
		ProjectID: optionalQuery(c, "project_id"),
	}
	if mine, _ := strconv.ParseBool(c.Query("mine")); mine {
		input.AssignedToMe = true
	}
	if s := c.Query("status"); s != "" {
		status := models.TaskStatus(s)
		input.Status = &status
	}

	params, paginated := utils.GetPaginationParams(c)
	if paginated {
		input.Page = params.Page
		input.PageSize = params.Limit
	}

	tasks, total, err := h.tasks.ListTasks(c.Request.Context(), sess, input)
	if err != nil {
		respondList(c, "tasks", "tasks", nil, err)
		return
	}

	response := dto.TaskListResponse{Tasks: dto.ToTaskDTOs(tasks)}
	if paginated {
		pagination := utils.NewPaginationResponse(params, total)
		response.Pagination = &pagination
	}
	c.JSON(http.StatusOK, response)
}

// GetTask returns a task with its project, assignee and subtasks
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "tasks", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task in a project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		ProjectID      string     `json:"project_id" binding:"required"`
		Title          string     `json:"title" binding:"required"`
		Description    *string    `json:"description"`
		Status         string     `json:"status"`
		Priority       string     `json:"priority"`
		AssignedTo     *string    `json:"assigned_to"`
		EstimatedHours *float64   `json:"estimated_hours"`
		Deadline       *time.Time `json:"deadline"`
		OrderIndex     int        `json:"order_index"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), sess, services.CreateTaskInput{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.TaskStatus(req.Status),
		Priority:       models.TaskPriority(req.Priority),
		AssignedTo:     req.AssignedTo,
		EstimatedHours: req.EstimatedHours,
		Deadline:       req.Deadline,
		OrderIndex:     req.OrderIndex,
	})
	if err != nil {
		respondError(c, "tasks", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask changes task fields. Moving a card on the board sends status
// and order_index.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title          *string    `json:"title"`
		Description    *string    `json:"description"`
		Status         *string    `json:"status"`
		Priority       *string    `json:"priority"`
		AssignedTo     *string    `json:"assigned_to"`
		ClearAssignee  bool       `json:"clear_assignee"`
		EstimatedHours *float64   `json:"estimated_hours"`
		BillableHours  *float64   `json:"billable_hours"`
		Deadline       *time.Time `json:"deadline"`
		ClearDeadline  bool       `json:"clear_deadline"`
		OrderIndex     *int       `json:"order_index"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		AssignedTo:     req.AssignedTo,
		ClearAssignee:  req.ClearAssignee,
		EstimatedHours: req.EstimatedHours,
		BillableHours:  req.BillableHours,
		Deadline:       req.Deadline,
		ClearDeadline:  req.ClearDeadline,
		OrderIndex:     req.OrderIndex,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), sess, c.Param("id"), input)
	if err != nil {
		respondError(c, "tasks", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its subtasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondError(c, "tasks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// CreateSubtask adds a checklist item to a task
func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type CreateSubtaskRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subtask, err := h.tasks.CreateSubtask(c.Request.Context(), sess, c.Param("id"), req.Title)
	if err != nil {
		respondError(c, "tasks", err)
		return
	}
	c.JSON(http.StatusCreated, subtask)
}

// ToggleSubtask flips a checklist item
func (h *TaskHandler) ToggleSubtask(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	subtask, err := h.tasks.ToggleSubtask(c.Request.Context(), sess, c.Param("id"), c.Param("subtaskId"))
	if err != nil {
		respondError(c, "tasks", err)
		return
	}
	c.JSON(http.StatusOK, subtask)
}

// DraftTasks suggests tasks for a project from a client brief. Nothing is saved.
func (h *TaskHandler) DraftTasks(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type DraftTasksRequest struct {
		Brief string `json:"brief" binding:"required"`
	}

	var req DraftTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.tasks.DraftTasks(c.Request.Context(), sess, c.Param("id"), req.Brief)
	if err != nil {
		respondError(c, "tasks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}
