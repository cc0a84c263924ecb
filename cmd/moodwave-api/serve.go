package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/moodwave/backend/internal/config"
	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/handlers"
	"github.com/moodwave/backend/internal/logger"
	"github.com/moodwave/backend/internal/middleware"
	"github.com/moodwave/backend/internal/repository"
	"github.com/moodwave/backend/internal/service"
	"github.com/moodwave/backend/pkg/emotionml"
	"github.com/moodwave/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	logger.SetDefault(log)

	log.Info("starting Moodwave API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
		logger.String("ml_service_url", cfg.MLService.URL),
	)

	// External clients
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	mlClient := emotionml.NewClient(cfg.MLService.URL, cfg.MLService.Timeout)

	clock := dates.System

	// Repositories
	entryRepo := repository.NewMoodEntryRepository(supabaseClient)
	activityRepo := repository.NewActivityRepository(supabaseClient)
	alertRepo := repository.NewAlertRepository(supabaseClient)
	settingsRepo := repository.NewSettingsRepository(supabaseClient)
	userRepo := repository.NewUserRepository(supabaseClient)

	// Services
	detector := service.NewPatternDetector(entryRepo, alertRepo, settingsRepo, clock)
	entryService := service.NewEntryService(entryRepo, activityRepo, mlClient, detector, clock)
	analyticsService := service.NewAnalyticsService(entryRepo, clock)
	alertService := service.NewAlertService(alertRepo, clock)
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(supabaseClient, userRepo)

	// Handlers
	entryHandler := handlers.NewEntryHandler(entryService)
	alertsHandler := handlers.NewAlertsHandler(alertService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	activitiesHandler := handlers.NewActivitiesHandler(activityRepo)
	authHandler := handlers.NewAuthHandler(authService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Health check; reports whether the emotion classifier is reachable.
	router.GET("/health", func(c *gin.Context) {
		mlStatus := "ok"
		if err := mlClient.Health(c.Request.Context()); err != nil {
			mlStatus = "unreachable"
		}
		c.JSON(200, gin.H{
			"status":     "ok",
			"env":        cfg.Server.Env,
			"ml_service": mlStatus,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit())
	{
		// Auth routes
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimitAuth())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.Auth(supabaseClient), authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		{
			// Mood entry routes
			protected.POST("/entries", entryHandler.CreateEntry)
			protected.GET("/entries/:id", entryHandler.GetEntry)
			protected.POST("/entries/:id/finalize", entryHandler.FinalizeEntry)
			protected.DELETE("/entries/:id", entryHandler.DeleteEntry)
			protected.DELETE("/entries/:id/audio", entryHandler.DeleteAudio)

			// Activity catalog
			protected.GET("/activities", activitiesHandler.List)

			// Pattern alert routes
			protected.GET("/alerts", alertsHandler.ListActive)
			protected.POST("/alerts/:id/dismiss", alertsHandler.Dismiss)

			// Analytics routes
			protected.GET("/analytics/summary", analyticsHandler.Summary)
			protected.GET("/analytics/calendar", analyticsHandler.Calendar)
			protected.GET("/analytics/weekdays", analyticsHandler.Weekdays)
			protected.GET("/analytics/trend", analyticsHandler.Trend)
			protected.GET("/analytics/mood-counts", analyticsHandler.MoodCounts)
			protected.GET("/analytics/activities", analyticsHandler.ActivityStats)
			protected.GET("/analytics/correlation", analyticsHandler.Correlation)

			// Settings routes
			protected.GET("/settings", settingsHandler.Get)
			protected.PUT("/settings", settingsHandler.Update)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
