package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/repository"
)

// DashboardService builds the landing page counters and short lists
type DashboardService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, invoiceRepo repository.InvoiceRepository) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		invoiceRepo: invoiceRepo,
		now:         time.Now,
	}
}

// Summary is the dashboard view
type Summary struct {
	ActiveProjects   int64            `json:"active_projects"`
	TotalTasks       int64            `json:"total_tasks"`
	UpcomingDeadline int64            `json:"upcoming_deadlines"`
	PaidRevenue      float64          `json:"paid_revenue"`
	RecentProjects   []models.Project `json:"recent_projects"`
	UpcomingTasks    []models.Task    `json:"upcoming_tasks"`
}

// Summary collects the studio-wide dashboard counters for staff. The upcoming
// count covers unfinished tasks due within the next week, including overdue ones.
func (s *DashboardService) Summary(ctx context.Context, sess Session) (*Summary, error) {
	if err := sess.requireWork(); err != nil {
		return nil, err
	}

	active, err := s.projectRepo.CountByStatus(ctx, models.ProjectStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active projects: %w", err)
	}

	tasks, err := s.taskRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	upcoming, err := s.taskRepo.CountDueBy(ctx, s.now().Add(constants.UpcomingDeadlineWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming deadlines: %w", err)
	}

	revenue, err := s.invoiceRepo.SumTotal(ctx, []models.InvoiceStatus{models.InvoiceStatusPaid}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	recent, err := s.projectRepo.List(ctx, repository.ProjectFilter{Limit: constants.DashboardListLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent projects: %w", err)
	}

	upcomingTasks, err := s.taskRepo.ListUpcoming(ctx, constants.DashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming tasks: %w", err)
	}

	return &Summary{
		ActiveProjects:   active,
		TotalTasks:       tasks,
		UpcomingDeadline: upcoming,
		PaidRevenue:      revenue,
		RecentProjects:   recent,
		UpcomingTasks:    upcomingTasks,
	}, nil
}
