package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Check pings one backing service (redis, postgres).
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	version     string
	checks      []Check
}

func NewHealthHandler(serviceName, version string, checks ...Check) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks:      checks,
	}
}

// HealthCheck always answers 200: the site keeps serving fallback content
// when a dependency is down, so a failed ping is reported, not fatal.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	var deps map[string]string
	if len(h.checks) > 0 {
		deps = make(map[string]string, len(h.checks))
	}
	for _, chk := range h.checks {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		if err := chk.Ping(pingCtx); err != nil {
			deps[chk.Name] = "down"
		} else {
			deps[chk.Name] = "up"
		}
		cancel()
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		Service:      h.serviceName,
		Version:      h.version,
		Dependencies: deps,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
