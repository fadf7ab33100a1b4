package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/middleware"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	"github.com/noah-isme/photographer-catalog-api/internal/service"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
	"github.com/noah-isme/photographer-catalog-api/pkg/response"
)

type catalogService interface {
	List(ctx context.Context, query dto.CatalogQuery) (*dto.CatalogPage, error)
	Facets(ctx context.Context) (models.Facets, error)
	Detail(ctx context.Context, id int64) (*dto.PhotographerDetail, error)
	Portfolio(ctx context.Context, id int64, index int) (*dto.PortfolioView, error)
}

type exportService interface {
	Export(ctx context.Context, format string, query dto.CatalogQuery) (*service.ExportFile, error)
}

// PhotographerHandler serves the catalog listing, profile pages and exports.
type PhotographerHandler struct {
	catalog   catalogService
	exports   exportService
	validator *validator.Validate
}

// NewPhotographerHandler constructs the handler.
func NewPhotographerHandler(catalog catalogService, exports exportService, validate *validator.Validate) *PhotographerHandler {
	if validate == nil {
		validate = service.NewValidator()
	}
	return &PhotographerHandler{catalog: catalog, exports: exports, validator: validate}
}

// List godoc
// @Summary List photographers
// @Description Filters, sorts and paginates the catalog. Price bounds default to the observed price range.
// @Tags Photographers
// @Produce json
// @Param search query string false "Matches name, location, tags and bio"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Param minRating query number false "Minimum rating"
// @Param styles query string false "Comma separated styles; any match"
// @Param location query string false "Location substring"
// @Param sortBy query string false "rating-high-low, rating-low-high, price-low-high, price-high-low, name-a-z, name-z-a, recently-added"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /photographers [get]
func (h *PhotographerHandler) List(c *gin.Context) {
	query, err := h.bindQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.catalog.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetResetPage(c, page.ResetPage)
	pagination := page.Pagination
	response.JSON(c, http.StatusOK, page, &pagination, middleware.ExtractMeta(c))
}

// Facets godoc
// @Summary Filter options
// @Description Locations, styles, observed price range and sort options of the loaded catalog.
// @Tags Photographers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /photographers/facets [get]
func (h *PhotographerHandler) Facets(c *gin.Context) {
	facets, err := h.catalog.Facets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, facets, nil)
}

// Detail godoc
// @Summary Photographer profile
// @Tags Photographers
// @Produce json
// @Param id path int true "Photographer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /photographers/{id} [get]
func (h *PhotographerHandler) Detail(c *gin.Context) {
	id, err := photographerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.catalog.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Portfolio godoc
// @Summary Portfolio image viewer
// @Tags Photographers
// @Produce json
// @Param id path int true "Photographer ID"
// @Param index path int true "Zero based image index"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /photographers/{id}/portfolio/{index} [get]
func (h *PhotographerHandler) Portfolio(c *gin.Context) {
	id, err := photographerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "index must be an integer"))
		return
	}
	view, err := h.catalog.Portfolio(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Export godoc
// @Summary Export the filtered catalog
// @Description Accepts the listing filters; pagination is ignored.
// @Tags Photographers
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default), pdf or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /photographers/export [get]
func (h *PhotographerHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	query, err := h.bindQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Export(c.Request.Context(), c.Query("format"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func (h *PhotographerHandler) bindQuery(c *gin.Context) (dto.CatalogQuery, error) {
	var query dto.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return query, invalidPayload(err)
	}
	query.Styles = ParseStyles(c.QueryArray("styles"))
	if err := h.validator.Struct(query); err != nil {
		return query, invalidPayload(err)
	}
	return query, nil
}
