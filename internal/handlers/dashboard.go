package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard returns the counters and short lists of the landing page.
// A failed read yields zero counters and empty lists.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	summary, err := h.dashboard.Summary(c.Request.Context(), sess)
	if errors.Is(err, services.ErrForbidden) {
		respondError(c, "dashboard", err)
		return
	}
	if err != nil {
		log.Printf("[dashboard] read failed: %v", err)
		summary = &services.Summary{}
	}
	c.JSON(http.StatusOK, dto.ToDashboardDTO(*summary))
}
