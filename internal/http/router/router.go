package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcus102/AGROVIE-sub002/internal/config"
	"github.com/marcus102/AGROVIE-sub002/internal/http/handlers"
	"github.com/marcus102/AGROVIE-sub002/internal/http/middleware"
	"github.com/marcus102/AGROVIE-sub002/internal/service"
)

// SetupRouter wires middleware and routes into a gin engine.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	wizardHandler *handlers.WizardHandler,
	missionHandler *handlers.MissionHandler,
	trackingHandler *handlers.TrackingHandler,
	templateHandler *handlers.TemplateHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	api.GET("/ws", wsHandler.Handle)

	// Public mission browsing.
	api.GET("/missions", missionHandler.List)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		wizardGroup := protected.Group("/wizard")
		{
			wizardGroup.POST("/validate", wizardHandler.ValidateStep)
			wizardGroup.POST("/advance", wizardHandler.Advance)
			wizardGroup.POST("/retreat", wizardHandler.Retreat)
			wizardGroup.POST("/jump", wizardHandler.Jump)
			wizardGroup.POST("/quote", wizardHandler.Quote)
			wizardGroup.POST("/adjust", wizardHandler.AdjustPrice)
		}

		protected.POST("/missions", missionHandler.Submit)
		protected.GET("/missions/mine", missionHandler.Mine)
		protected.GET("/missions/:id", missionHandler.Get)
		protected.POST("/missions/:id/apply", missionHandler.Apply)
		protected.PATCH("/missions/:id/status", missionHandler.UpdateStatus)

		trackingGroup := protected.Group("/tracking")
		{
			trackingGroup.POST("", trackingHandler.Start)
			trackingGroup.GET("", trackingHandler.Mine)
			trackingGroup.GET("/:id", trackingHandler.Get)
			trackingGroup.POST("/:id/pause", trackingHandler.Pause)
			trackingGroup.POST("/:id/resume", trackingHandler.Resume)
			trackingGroup.POST("/:id/complete", trackingHandler.Complete)
			trackingGroup.POST("/:id/tasks/complete", trackingHandler.CompleteTask)
			trackingGroup.POST("/:id/time", trackingHandler.AddTime)
			trackingGroup.GET("/:id/earnings", trackingHandler.Earnings)
		}

		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", templateHandler.Save)
			templateGroup.GET("", templateHandler.List)
			templateGroup.GET("/:id/draft", templateHandler.Load)
			templateGroup.PUT("/:id", templateHandler.Update)
			templateGroup.DELETE("/:id", templateHandler.Delete)
		}

		protected.POST("/media/photos", mediaHandler.Upload)
		protected.DELETE("/media/photos/:id", mediaHandler.Delete)
	}

	return r
}
