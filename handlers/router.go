package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through slog.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		if c.Writer.Status() >= 500 {
			log.Error("request", attrs...)
			return
		}
		log.Info("request", attrs...)
	}
}

// NewRouter wires the pages and the game API.
func NewRouter(logger *slog.Logger, h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.HTMLRender = h.tpl.Renderer()

	// Main pages
	r.GET("/", h.HomeHandler)
	r.GET("/new-game", h.NewGameHandler)
	r.GET("/game/:id", h.GamePageHandler)
	r.GET("/healthz", h.HealthHandler)

	// Game API endpoints
	api := r.Group("/api/game/:id")
	api.POST("/move/:index", h.GameMoveHandler)
	api.POST("/jump/:step", h.GameJumpHandler)
	api.POST("/sort", h.GameSortHandler)
	api.GET("/state", h.GameStateHandler)
	api.GET("/events", h.GameSSEHandler)

	return r
}
