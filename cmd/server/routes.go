package main

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/config"
	"github.com/yukikurage/studio-ops-api/internal/constants"
	"github.com/yukikurage/studio-ops-api/internal/handlers"
	"github.com/yukikurage/studio-ops-api/internal/middleware"
	"github.com/yukikurage/studio-ops-api/internal/pdf"
	"github.com/yukikurage/studio-ops-api/internal/realtime"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"github.com/yukikurage/studio-ops-api/internal/services"
	"gorm.io/gorm"
)

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		s, err := redisStore.NewStore(
			10,    // pool size
			"tcp", // network type
			cfg.RedisHost+":"+cfg.RedisPort,
			"", // username
			"", // password
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = s
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.IsRelease(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func newRouter(cfg *config.Config, db *gorm.DB, broker *realtime.Broker) (*gin.Engine, error) {
	store, err := newSessionStore(cfg)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)

	// With the listener on, the notify trigger announces activity rows.
	var publisher services.ChangePublisher = broker
	if cfg.RealtimePGListen {
		publisher = nil
	}

	var mailer services.Mailer
	if cfg.MailEnabled() {
		mailer = services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	activity := services.NewActivityService(repository.NewActivityRepository(db), publisher)
	notifications := services.NewNotificationService(repository.NewNotificationRepository(db), userRepo, mailer)
	users := services.NewUserService(userRepo, badgeRepo)
	projects := services.NewProjectService(projectRepo, taskRepo, userRepo)

	verifier := middleware.NewTokenVerifier(cfg.AuthJWTSecret)

	authHandler := handlers.NewAuthHandler(verifier, users, activity)
	dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(projectRepo, taskRepo, invoiceRepo))
	projectHandler := handlers.NewProjectHandler(projects)
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, userRepo, activity, notifications, aiService))
	assetHandler := handlers.NewAssetHandler(
		services.NewAssetService(assetRepo, projectRepo, folderRepo, activity),
		services.NewFolderService(folderRepo, projectRepo),
	)
	feedbackHandler := handlers.NewFeedbackHandler(services.NewFeedbackService(repository.NewCommentRepository(db), assetRepo, taskRepo, projectRepo, activity))
	teamHandler := handlers.NewTeamHandler(services.NewTeamService(userRepo, badgeRepo, activity), broker)
	invoiceHandler := handlers.NewInvoiceHandler(
		services.NewInvoiceService(invoiceRepo, userRepo, projectRepo, services.NewSequenceNumberGenerator(invoiceRepo)),
		pdf.NewRenderer(),
	)
	settingsHandler := handlers.NewSettingsHandler(users, notifications)

	r := gin.Default()
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.Authenticate(verifier, users))
	r.Use(middleware.PageGate())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Studio Ops API is running",
		})
	})

	r.GET("/login", authHandler.LoginPage)
	r.GET("/signup", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

	r.GET("/dashboard", middleware.RequireAuth(), middleware.RequireWorkRole(), dashboardHandler.GetDashboard)

	projectRoutes := r.Group("/projects")
	projectRoutes.Use(middleware.RequireAuth())
	{
		projectRoutes.GET("", projectHandler.ListProjects)
		projectRoutes.GET("/options", middleware.RequireWorkRole(), projectHandler.ListProjectOptions)
		projectRoutes.POST("", middleware.RequireWorkRole(), projectHandler.CreateProject)
		projectRoutes.GET("/:id/board", middleware.RequireProjectAccess(projects), projectHandler.GetBoard)
		projectRoutes.PATCH("/:id", middleware.RequireWorkRole(), projectHandler.UpdateProject)
		projectRoutes.GET("/:id/members", middleware.RequireProjectAccess(projects), projectHandler.ListMembers)
		projectRoutes.POST("/:id/members", middleware.RequireWorkRole(), projectHandler.AddMember)
		projectRoutes.POST("/:id/tasks/draft", middleware.RequireWorkRole(), taskHandler.DraftTasks)
	}

	taskRoutes := r.Group("/tasks")
	taskRoutes.Use(middleware.RequireAuth(), middleware.RequireWorkRole())
	{
		taskRoutes.GET("", taskHandler.ListTasks)
		taskRoutes.POST("", taskHandler.CreateTask)
		taskRoutes.GET("/:id", taskHandler.GetTask)
		taskRoutes.PATCH("/:id", taskHandler.UpdateTask)
		taskRoutes.DELETE("/:id", taskHandler.DeleteTask)
		taskRoutes.POST("/:id/subtasks", taskHandler.CreateSubtask)
		taskRoutes.PATCH("/:id/subtasks/:subtaskId", taskHandler.ToggleSubtask)
	}

	assetRoutes := r.Group("/assets")
	assetRoutes.Use(middleware.RequireAuth(), middleware.RequireWorkRole())
	{
		assetRoutes.GET("", assetHandler.ListAssets)
		assetRoutes.POST("", assetHandler.UploadAssets)
		assetRoutes.GET("/folders", assetHandler.ListFolders)
		assetRoutes.POST("/folders", assetHandler.CreateFolder)
		assetRoutes.PATCH("/folders/:id", assetHandler.MoveFolder)
		assetRoutes.GET("/:id/versions", assetHandler.ListVersions)
		assetRoutes.POST("/:id/versions", assetHandler.UploadVersion)
	}

	feedbackRoutes := r.Group("/feedback")
	feedbackRoutes.Use(middleware.RequireAuth())
	{
		feedbackRoutes.GET("", middleware.RequireWorkRole(), feedbackHandler.ListFeedback)
		feedbackRoutes.POST("", feedbackHandler.CreateComment)
	}

	teamRoutes := r.Group("/team")
	teamRoutes.Use(middleware.RequireAuth(), middleware.RequireWorkRole())
	{
		teamRoutes.GET("", teamHandler.GetTeam)
		teamRoutes.GET("/activity", teamHandler.ListActivity)
		teamRoutes.GET("/activity/stream", teamHandler.StreamActivity)
		teamRoutes.POST("/members/:id/badges", middleware.RequireAdmin(), teamHandler.AwardBadges)
	}

	invoiceRoutes := r.Group("/invoices")
	invoiceRoutes.Use(middleware.RequireAuth())
	{
		invoiceRoutes.GET("", invoiceHandler.ListInvoices)
		invoiceRoutes.GET("/clients", middleware.RequireAdmin(), invoiceHandler.ListClients)
		invoiceRoutes.GET("/:id", invoiceHandler.GetInvoice)
		invoiceRoutes.GET("/:id/pdf", invoiceHandler.DownloadPDF)
		invoiceRoutes.POST("", middleware.RequireAdmin(), invoiceHandler.CreateInvoice)
		invoiceRoutes.PATCH("/:id/status", middleware.RequireAdmin(), invoiceHandler.UpdateInvoiceStatus)
	}

	settingsRoutes := r.Group("/settings")
	settingsRoutes.Use(middleware.RequireAuth())
	{
		settingsRoutes.GET("", settingsHandler.GetSettings)
		settingsRoutes.PATCH("", settingsHandler.UpdateSettings)
		settingsRoutes.GET("/notifications", settingsHandler.ListNotifications)
		settingsRoutes.POST("/notifications/:id/read", settingsHandler.MarkNotificationRead)
	}

	return r, nil
}
