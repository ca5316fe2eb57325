package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sheetwise/sheetwise-backend/internal/config"
	"github.com/sheetwise/sheetwise-backend/internal/handler"
	"github.com/sheetwise/sheetwise-backend/internal/middleware"
	"github.com/sheetwise/sheetwise-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Sheet    *handler.SheetHandler
	Attempt  *handler.AttemptHandler
	Analysis *handler.AnalysisHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin routes with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Sheets ────────────────────────────────────────────────────────
	router.POST("/sheets", handlers.Sheet.CreateSheet)
	router.GET("/sheets", handlers.Sheet.ListSheets)
	router.GET("/sheets/:id", handlers.Sheet.GetSheet)
	router.PUT("/sheets/:id/answer-key", handlers.Sheet.SetAnswerKey)
	router.GET("/sheets/:id/attempts", handlers.Attempt.ListBySheet)

	// ─── Attempts ──────────────────────────────────────────────────────
	router.POST("/attempts", handlers.Attempt.CreateAttempt)
	router.GET("/attempts/:id", handlers.Attempt.GetAttempt)
	router.PATCH("/attempts/:id", handlers.Attempt.PatchAttempt)
	router.POST("/attempts/:id/answers", handlers.Attempt.RecordAnswer)
	router.POST("/attempts/:id/suggestions", handlers.Attempt.ApplySuggestion)

	// ─── Image Analysis (Rate Limited) ─────────────────────────────────
	// The simulated delay makes this the only endpoint worth hammering.
	analysisLimiter := middleware.NewRateLimiter(30, time.Minute)
	router.POST("/analyze-image", analysisLimiter.Middleware(), handlers.Analysis.AnalyzeImage)

	// ─── WebSocket ─────────────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/attempts/:id/stream", handlers.WS.AttemptStream)
	}

	return router
}
