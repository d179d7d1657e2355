package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers"
	"github.com/ignatzorin/proposal-backend/internal/http/middleware"
	"github.com/ignatzorin/proposal-backend/internal/service"
)

// SetupRouter собирает gin.Engine со всеми маршрутами /api.
// tokenManager == nil означает открытый API.
func SetupRouter(
	cfg *config.Config,
	catalogHandler *handlers.CatalogHandler,
	generationHandler *handlers.GenerationHandler,
	proposalHandler *handlers.ProposalHandler,
	aeHandler *handlers.AccountExecutiveHandler,
	promptHandler *handlers.PromptHandler,
	transcriptHandler *handlers.TranscriptHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(tokenManager))

	api.GET("/catalog", catalogHandler.Get)
	api.GET("/ws", wsHandler.Handle)

	proposals := api.Group("/proposals")
	{
		proposals.POST("/generate", middleware.RateLimitMiddleware("generate", cfg.RateLimitLimit, cfg.RateLimitPeriod), generationHandler.Generate)
		proposals.GET("", proposalHandler.List)
		proposals.POST("", proposalHandler.Save)
		proposals.DELETE("/:id", proposalHandler.Delete)
	}

	team := api.Group("/account-executives")
	{
		team.GET("", aeHandler.List)
		team.PUT("", aeHandler.Replace)
		team.POST("", aeHandler.Add)
		team.POST("/reconcile", aeHandler.Reconcile)
		team.DELETE("/:id", aeHandler.Remove)
	}

	settings := api.Group("/settings")
	{
		settings.GET("/prompt", promptHandler.Get)
		settings.PUT("/prompt", promptHandler.Put)
		settings.DELETE("/prompt", promptHandler.Reset)
		settings.GET("/prompt/default", promptHandler.Default)
	}

	api.POST("/transcripts", transcriptHandler.Upload)

	return r
}
