package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/service"
)

type snapshotStatus interface {
	Ready() bool
	Status() dto.SnapshotStatus
}

// OpsHandler exposes health, readiness and Prometheus endpoints.
type OpsHandler struct {
	metrics *service.MetricsService
	catalog snapshotStatus
}

// NewOpsHandler constructs the handler.
func NewOpsHandler(metrics *service.MetricsService, catalog snapshotStatus) *OpsHandler {
	return &OpsHandler{metrics: metrics, catalog: catalog}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *OpsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health reports liveness.
func (h *OpsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports 503 until the catalog snapshot is loaded.
func (h *OpsHandler) Ready(c *gin.Context) {
	if h.catalog == nil || !h.catalog.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "snapshot": h.catalog.Status()})
}
