package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mindpace/mindpace-backend/internal/http/handlers"
	"github.com/mindpace/mindpace-backend/internal/http/middleware"
	"github.com/mindpace/mindpace-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log              *logger.Logger
	AttentionHandler *handlers.AttentionHandler
	MicroHandler     *handlers.MicroLearnHandler
	FeedbackHandler  *handlers.FeedbackHandler
	CognitiveHandler *handlers.CognitiveHandler
	MomentumHandler  *handlers.MomentumHandler
	DashboardHandler *handlers.DashboardHandler
	EventsHandler    *handlers.EventsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("mindpace"))
	router.Use(middleware.CORS())
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		attention := api.Group("/attention")
		attention.POST("/sessions", cfg.AttentionHandler.StartSession)
		attention.POST("/sessions/:id/signals", cfg.AttentionHandler.RecordSignal)
		attention.GET("/config", cfg.AttentionHandler.OptimalConfig)

		micro := api.Group("/micro")
		micro.POST("/chunk", cfg.MicroHandler.Chunk)
		micro.POST("/moments", cfg.MicroHandler.DetectMoment)
		micro.GET("/feed", cfg.MicroHandler.Feed)

		feedback := api.Group("/feedback")
		feedback.POST("/events", cfg.FeedbackHandler.RecordEvent)
		feedback.GET("/progress", cfg.FeedbackHandler.Progress)

		cognitive := api.Group("/cognitive")
		cognitive.POST("/analyze", cfg.CognitiveHandler.Analyze)
		cognitive.GET("/state", cfg.CognitiveHandler.State)
		cognitive.POST("/adjust", cfg.CognitiveHandler.Adjust)
		cognitive.GET("/pacing", cfg.CognitiveHandler.Pacing)

		momentum := api.Group("/momentum")
		momentum.POST("/activities", cfg.MomentumHandler.RecordActivity)
		momentum.GET("/status", cfg.MomentumHandler.Status)
		momentum.GET("/comeback", cfg.MomentumHandler.Comeback)
		momentum.GET("/boost", cfg.MomentumHandler.Boost)

		api.GET("/dashboard", cfg.DashboardHandler.Report)
		api.GET("/events", cfg.EventsHandler.List)
	}

	return router
}
