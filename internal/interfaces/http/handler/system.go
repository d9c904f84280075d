package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storekit/backend/internal/infrastructure/persistence"
)

// SystemHandler exposes health and readiness endpoints. These sit outside
// both auth gates so load balancers can probe them.
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startedAt time.Time
	version   string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startedAt: time.Now(),
		version:   version,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

type readyResponse struct {
	Status   string                      `json:"status"`
	Database string                      `json:"database"`
	Pool     persistence.ConnectionStats `json:"pool,omitempty"`
}

// Health reports liveness. It never touches dependencies.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, healthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready reports readiness, checking the database connection
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, readyResponse{
			Status:   "unavailable",
			Database: "down",
		})
		return
	}

	stats, err := h.db.Stats()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, readyResponse{
			Status:   "unavailable",
			Database: "down",
		})
		return
	}

	c.JSON(http.StatusOK, readyResponse{
		Status:   "ok",
		Database: "up",
		Pool:     stats,
	})
}
