package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/cache"
	"github.com/Criterio-inc/mognadsmataren/internal/config"
	"github.com/Criterio-inc/mognadsmataren/internal/events"
	"github.com/Criterio-inc/mognadsmataren/internal/handlers"
	"github.com/Criterio-inc/mognadsmataren/internal/insights"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories/postgres"
	"github.com/Criterio-inc/mognadsmataren/internal/services"
	"github.com/Criterio-inc/mognadsmataren/internal/utils"
	"github.com/Criterio-inc/mognadsmataren/pkg"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

// @title Mognadsmätaren API
// @version 1.0
// @description AI maturity assessment service for consultant-led client surveys
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	// Services, cache, and the event publisher log through slog directly.
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		slogger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		slogger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	cacheService := cache.NewRedisCache(redisClient, slogger)
	repo := postgres.NewRepository(db)
	validator := utils.NewValidator()

	eventPublisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		slogger.Error("Failed to create event publisher, using mock", "error", err)
		eventPublisher = events.NewMockEventPublisher(slogger)
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			slogger.Error("Failed to close event publisher", "error", err)
		}
	}()

	casdoorsdk.InitConfig(
		cfg.Casdoor.Endpoint,
		cfg.Casdoor.ClientID,
		cfg.Casdoor.ClientSecret,
		cfg.Casdoor.Certificate,
		cfg.Casdoor.Organization,
		cfg.Casdoor.Application,
	)

	// Without an API key the generator runs on deterministic templates only.
	var openAIClient *insights.OpenAIClient
	if cfg.OpenAI.APIKey != "" {
		openAIClient = insights.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	} else {
		slogger.Warn("OPENAI_API_KEY not set, insight generation uses fallback templates")
	}
	generator := insights.NewGenerator(openAIClient, logger)

	svcs := handlers.Services{
		Project: services.NewProjectService(repo, cacheService, eventPublisher, slogger, validator),
		Survey:  services.NewSurveyService(repo, cacheService, eventPublisher, slogger, validator),
		Insight: services.NewInsightService(repo, generator, eventPublisher, slogger),
		Export:  services.NewExportService(repo, slogger),
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	hm := handlers.NewHandlerManager(svcs, repo, validator, logger)
	hm.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slogger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slogger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogger.Error("Forced shutdown", "error", err)
		os.Exit(1)
	}

	slogger.Info("Server exited")
}
