package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/middleware"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// ListProjects returns projects newest first, optionally filtered by status
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var status *models.ProjectStatus
	if s := c.Query("status"); s != "" {
		ps := models.ProjectStatus(s)
		status = &ps
	}

	projects, err := h.projects.ListProjects(c.Request.Context(), sess, status)
	respondList(c, "projects", "projects", dto.ToProjectDTOs(projects), err)
}

// ListProjectOptions returns active projects by name for pickers
func (h *ProjectHandler) ListProjectOptions(c *gin.Context) {
	projects, err := h.projects.ListActiveProjects(c.Request.Context())
	respondList(c, "projects", "projects", dto.ToProjectDTOs(projects), err)
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Name        string     `json:"name" binding:"required"`
		Description *string    `json:"description"`
		ClientID    *string    `json:"client_id"`
		Status      string     `json:"status"`
		StartDate   *time.Time `json:"start_date"`
		Deadline    *time.Time `json:"deadline"`
		Budget      *float64   `json:"budget"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), sess, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		Status:      models.ProjectStatus(req.Status),
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		Budget:      req.Budget,
	})
	if err != nil {
		respondError(c, "projects", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// GetBoard returns the project with its tasks grouped into status columns.
// The project is loaded by RequireProjectAccess.
func (h *ProjectHandler) GetBoard(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	board, err := h.projects.Board(c.Request.Context(), sess, project.ID)
	if err != nil {
		respondError(c, "projects", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// UpdateProject edits project fields
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		ClientID    *string    `json:"client_id"`
		Status      *string    `json:"status"`
		StartDate   *time.Time `json:"start_date"`
		Deadline    *time.Time `json:"deadline"`
		Budget      *float64   `json:"budget"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		Budget:      req.Budget,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.projects.UpdateProject(c.Request.Context(), sess, c.Param("id"), input)
	if err != nil {
		respondError(c, "projects", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// ListMembers returns the project's members in join order
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}
	members, err := h.projects.ListMembers(c.Request.Context(), sess, c.Param("id"))
	respondList(c, "projects", "members", dto.ToMemberDTOs(members), err)
}

// AddMember adds a user to the project
func (h *ProjectHandler) AddMember(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID string `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Role == "" {
		req.Role = string(models.MemberRoleMember)
	}

	member, err := h.projects.AddMember(c.Request.Context(), sess, c.Param("id"), req.UserID, models.MemberRole(req.Role))
	if err != nil {
		respondError(c, "projects", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user_id":  member.UserID,
		"role":     member.Role,
		"added_at": member.AddedAt,
	})
}
