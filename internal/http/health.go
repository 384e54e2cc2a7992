package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/library/internal/database"
)

const (
	healthHealthy   = "healthy"
	healthUnhealthy = "unhealthy"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports whether the catalog database is reachable.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status handles GET /health. Any failed check turns the response into a 503.
func (h *HealthController) Status(c *gin.Context) {
	dbCheck, ok := h.checkDatabase()

	resp := HealthResponse{
		Status:  healthHealthy,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"database": dbCheck},
	}
	code := http.StatusOK
	if !ok {
		resp.Status = healthUnhealthy
		code = http.StatusServiceUnavailable
	}

	c.IndentedJSON(code, resp)
}

func (h *HealthController) checkDatabase() (string, bool) {
	if h.db == nil {
		return "not configured", true
	}
	if err := h.db.Ping(); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}

// Ping handles GET /ping
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
