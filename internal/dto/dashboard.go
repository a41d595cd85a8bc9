package dto

import "github.com/yukikurage/studio-ops-api/internal/services"

// DashboardDTO is the landing page
type DashboardDTO struct {
	ActiveProjects    int64        `json:"active_projects"`
	TotalTasks        int64        `json:"total_tasks"`
	UpcomingDeadlines int64        `json:"upcoming_deadlines"`
	PaidRevenue       float64      `json:"paid_revenue"`
	RecentProjects    []ProjectDTO `json:"recent_projects"`
	UpcomingTasks     []TaskDTO    `json:"upcoming_tasks"`
}

func ToDashboardDTO(s services.Summary) DashboardDTO {
	return DashboardDTO{
		ActiveProjects:    s.ActiveProjects,
		TotalTasks:        s.TotalTasks,
		UpcomingDeadlines: s.UpcomingDeadline,
		PaidRevenue:       s.PaidRevenue,
		RecentProjects:    ToProjectDTOs(s.RecentProjects),
		UpcomingTasks:     ToTaskDTOs(s.UpcomingTasks),
	}
}
