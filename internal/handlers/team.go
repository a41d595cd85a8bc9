package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/realtime"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

type TeamHandler struct {
	team   *services.TeamService
	broker *realtime.Broker
}

func NewTeamHandler(team *services.TeamService, broker *realtime.Broker) *TeamHandler {
	return &TeamHandler{team: team, broker: broker}
}

// GetTeam returns the leaderboard, team totals and the recent activity feed
func (h *TeamHandler) GetTeam(c *gin.Context) {
	ctx := c.Request.Context()

	board, err := h.team.Leaderboard(ctx)
	if err != nil {
		log.Printf("[team] leaderboard failed: %v", err)
		board = &services.Leaderboard{}
	}

	activity, err := h.team.RecentActivity(ctx)
	if err != nil {
		log.Printf("[team] activity failed: %v", err)
		activity = []models.TeamActivity{}
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*board, activity))
}

func (h *TeamHandler) ListActivity(c *gin.Context) {
	activity, err := h.team.RecentActivity(c.Request.Context())
	respondList(c, "team", "activity", dto.ToActivityDTOs(activity), err)
}

// StreamActivity pushes the recent activity list over SSE. A full snapshot is
// sent on connect and again after every recorded activity.
func (h *TeamHandler) StreamActivity(c *gin.Context) {
	ctx := c.Request.Context()

	feed := realtime.NewFeed[models.TeamActivity](h.broker, constants.TopicTeamActivity, h.team.RecentActivity)
	go feed.Run(ctx)

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	snapshots := feed.Snapshots()
	c.Stream(func(w io.Writer) bool {
		snap, ok := <-snapshots
		if !ok {
			return false
		}
		c.SSEvent("activity", dto.ToActivityDTOs(snap))
		return true
	})
}

// AwardBadges grants every badge a member's XP qualifies for
func (h *TeamHandler) AwardBadges(c *gin.Context) {
	badges, err := h.team.AwardEligibleBadges(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "team", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"awarded": badges})
}
