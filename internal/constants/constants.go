package constants

import "time"

// Context and session keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyEmail    = "user_email"
	ContextKeyProject  = "project"

	SessionCookieName = "studio_session"
	SessionKeyToken   = "access_token"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Workflow
const (
	XPPerLevel = 100

	UpcomingDeadlineWindow = 7 * 24 * time.Hour
	ActivityFeedLimit      = 20
	DashboardListLimit     = 5

	GeneralFeedbackGroup = "General"
)

// AI task drafting
const (
	MaxAIDraftedTasks = 20
)

// Realtime topics
const (
	TopicTeamActivity = "team_activity"
)
