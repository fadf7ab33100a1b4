package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/pkg/response"
)

type catalogRefresher interface {
	ScheduleRefresh(reason string)
	Status() dto.SnapshotStatus
}

// CatalogHandler exposes snapshot administration.
type CatalogHandler struct {
	catalog catalogRefresher
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog catalogRefresher) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Refresh godoc
// @Summary Refresh the catalog snapshot
// @Description Schedules a debounced reload from the record source. Bursts collapse into one fetch.
// @Tags Catalog
// @Produce json
// @Success 202 {object} response.Envelope
// @Router /admin/catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	h.catalog.ScheduleRefresh("admin")
	response.JSON(c, http.StatusAccepted, dto.RefreshResponse{Scheduled: true, Snapshot: h.catalog.Status()}, nil)
}

// Status godoc
// @Summary Catalog snapshot status
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/catalog/status [get]
func (h *CatalogHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.Status(), nil)
}
