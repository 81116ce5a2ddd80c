package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripcraft/internal/config"
	"tripcraft/internal/services"
)

type HealthController struct {
	frontendURL      string
	db               *gorm.DB
	itineraryService services.ItineraryServiceInterface
	started          time.Time
	logger           *zap.Logger
}

// NewHealthController accepts a nil db when the generation log is disabled.
func NewHealthController(cfg *config.Config, db *gorm.DB, itineraryService services.ItineraryServiceInterface, logger *zap.Logger) *HealthController {
	return &HealthController{
		frontendURL:      cfg.FrontendURL,
		db:               db,
		itineraryService: itineraryService,
		started:          time.Now(),
		logger:           logger,
	}
}

// Ping godoc
// @Summary Liveness probe
// @Produce plain
// @Success 200 {string} string "Backend is running!"
// @Router /ping [get]
func (h *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "Backend is running!")
}

// Root sends browsers that hit the API port to the front end. It answers 404
// when no front-end URL is configured.
func (h *HealthController) Root(c *gin.Context) {
	if h.frontendURL == "" {
		c.Status(http.StatusNotFound)
		return
	}
	c.Redirect(http.StatusFound, h.frontendURL)
}

type checkResult struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health godoc
// @Summary Readiness report with generation counters
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 800*time.Millisecond)
	defer cancel()

	resp := gin.H{
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"time":       time.Now().Format(time.RFC3339),
	}

	if h.db == nil {
		resp["status"] = "ok"
		resp["checks"] = gin.H{"database": "disabled"}
		c.JSON(http.StatusOK, resp)
		return
	}

	db := checkResult{OK: true}
	if sqlDB, err := h.db.DB(); err != nil {
		db = checkResult{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = checkResult{Err: "ping: " + err.Error()}
	}
	resp["checks"] = gin.H{"database": db}

	if !db.OK {
		h.logger.Warn("health check failed", zap.String("database", db.Err))
		resp["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	stats, err := h.itineraryService.GenerationStats(ctx)
	if err != nil {
		h.logger.Warn("could not read generation stats", zap.Error(err))
	} else {
		resp["generations"] = stats
	}
	resp["status"] = "ok"
	c.JSON(http.StatusOK, resp)
}
