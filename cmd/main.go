package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebookgo/clock"
	"github.com/gin-gonic/gin"

	redisclient "github.com/mindpace/mindpace-backend/internal/clients/redis"
	"github.com/mindpace/mindpace-backend/internal/config"
	"github.com/mindpace/mindpace-backend/internal/data/repos"
	"github.com/mindpace/mindpace-backend/internal/db"
	"github.com/mindpace/mindpace-backend/internal/http/handlers"
	"github.com/mindpace/mindpace-backend/internal/observability"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
	"github.com/mindpace/mindpace-backend/internal/server"
	"github.com/mindpace/mindpace-backend/internal/services"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed", "error", err)
	}
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "mindpace",
		Environment: cfg.Env,
		Version:     os.Getenv("SERVICE_VERSION"),
	})

	// Engagement log is optional; the trackers run fully in memory without it.
	dbService, err := db.New(log)
	if err != nil {
		log.Warn("database init failed, engagement log disabled", "error", err)
		dbService = nil
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Warn("database migration failed, engagement log disabled", "error", err)
		dbService = nil
	}
	var eventRepo repos.EngagementEventRepo
	if gdb := dbService.DB(); gdb != nil {
		eventRepo = repos.NewEngagementEventRepo(gdb, log)
	}

	cache, err := redisclient.NewCache(log)
	if err != nil {
		log.Warn("redis init failed, report cache disabled", "error", err)
		cache = nil
	}

	clk := clock.New()

	attentionService := services.NewAttentionService(log, cfg.Engine, clk)
	microService := services.NewMicroLearnService(log, cfg.Engine)
	feedbackService := services.NewFeedbackService(log, cfg.Engine, clk, eventRepo)
	cognitiveService := services.NewCognitiveService(log, cfg.Engine)
	momentumService := services.NewMomentumService(log, cfg.Engine, clk, eventRepo)
	dashboardService := services.NewDashboardService(log, cfg.Engine, clk, cache, attentionService, feedbackService, momentumService, cognitiveService)

	router := server.NewRouter(server.RouterConfig{
		Log:              log,
		AttentionHandler: handlers.NewAttentionHandler(attentionService),
		MicroHandler:     handlers.NewMicroLearnHandler(microService),
		FeedbackHandler:  handlers.NewFeedbackHandler(feedbackService),
		CognitiveHandler: handlers.NewCognitiveHandler(cognitiveService),
		MomentumHandler:  handlers.NewMomentumHandler(momentumService),
		DashboardHandler: handlers.NewDashboardHandler(dashboardService),
		EventsHandler:    handlers.NewEventsHandler(eventRepo),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           http.MaxBytesHandler(router, cfg.HTTP.MaxRequestBytes),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("server listening", "addr", cfg.HTTP.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown failed", "error", err)
	}
	if cache != nil {
		_ = cache.Close()
	}
	if otelShutdown != nil {
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Warn("otel shutdown failed", "error", err)
		}
	}
}
