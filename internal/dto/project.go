package dto

import (
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   *string              `json:"description,omitempty"`
	Status        models.ProjectStatus `json:"status"`
	Client        *UserSummaryDTO      `json:"client,omitempty"`
	StartDate     *time.Time           `json:"start_date,omitempty"`
	Deadline      *time.Time           `json:"deadline,omitempty"`
	Budget        *float64             `json:"budget,omitempty"`
	RevisionCount int                  `json:"revision_count"`
	CreatedBy     string               `json:"created_by"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// MemberDTO represents a project member
type MemberDTO struct {
	User    UserSummaryDTO    `json:"user"`
	Role    models.MemberRole `json:"role"`
	AddedAt time.Time         `json:"added_at"`
}

// BoardColumnDTO is one status column of a task board
type BoardColumnDTO struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []TaskDTO         `json:"tasks"`
}

// BoardDTO is the project detail page
type BoardDTO struct {
	Project ProjectDTO       `json:"project"`
	Columns []BoardColumnDTO `json:"columns"`
}

func ToProjectDTO(p models.Project) ProjectDTO {
	return ProjectDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Status:        p.Status,
		Client:        ToUserSummaryDTO(p.Client),
		StartDate:     p.StartDate,
		Deadline:      p.Deadline,
		Budget:        p.Budget,
		RevisionCount: p.RevisionCount,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}

func ToMemberDTOs(members []models.ProjectMember) []MemberDTO {
	out := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		user := ToUserSummaryDTO(&m.User)
		if user == nil {
			user = &UserSummaryDTO{ID: m.UserID}
		}
		out = append(out, MemberDTO{User: *user, Role: m.Role, AddedAt: m.AddedAt})
	}
	return out
}

func ToBoardDTO(board services.BoardView) BoardDTO {
	columns := make([]BoardColumnDTO, len(board.Columns))
	for i, col := range board.Columns {
		columns[i] = BoardColumnDTO{Status: col.Status, Tasks: ToTaskDTOs(col.Tasks)}
	}
	return BoardDTO{Project: ToProjectDTO(board.Project), Columns: columns}
}
