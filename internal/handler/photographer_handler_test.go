package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/middleware"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	"github.com/noah-isme/photographer-catalog-api/internal/service"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

type catalogServiceMock struct {
	lastQuery dto.CatalogQuery
	page      *dto.CatalogPage
	detail    *dto.PhotographerDetail
	portfolio *dto.PortfolioView
	err       error
	gotID     int64
	gotIndex  int
}

func (m *catalogServiceMock) List(ctx context.Context, query dto.CatalogQuery) (*dto.CatalogPage, error) {
	m.lastQuery = query
	return m.page, m.err
}

func (m *catalogServiceMock) Facets(ctx context.Context) (models.Facets, error) {
	return models.Facets{Locations: []string{"Delhi"}, Styles: []string{"Outdoor"}, SortOptions: models.SortOptions}, m.err
}

func (m *catalogServiceMock) Detail(ctx context.Context, id int64) (*dto.PhotographerDetail, error) {
	m.gotID = id
	return m.detail, m.err
}

func (m *catalogServiceMock) Portfolio(ctx context.Context, id int64, index int) (*dto.PortfolioView, error) {
	m.gotID, m.gotIndex = id, index
	return m.portfolio, m.err
}

type exportServiceMock struct {
	format string
	query  dto.CatalogQuery
}

func (m *exportServiceMock) Export(ctx context.Context, format string, query dto.CatalogQuery) (*service.ExportFile, error) {
	m.format, m.query = format, query
	return &service.ExportFile{Filename: "photographers.csv", ContentType: "text/csv", Body: []byte("ID\n1\n"), Rows: 1}, nil
}

type envelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.PageMetadata   `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestPhotographerHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &catalogServiceMock{page: &dto.CatalogPage{
		Items:      []dto.PhotographerCard{{ID: 1, Name: "Aarav Mehta", FormattedPrice: "₹5,000"}},
		Filters:    models.DefaultFilterSpec(),
		Pagination: models.PageMetadata{CurrentPage: 1, ItemsPerPage: 12, TotalItems: 1, TotalPages: 1},
		ResetPage:  true,
	}}
	h := NewPhotographerHandler(mockSvc, nil, nil)

	c, w := newGinContext(http.MethodGet, "/photographers?search=+aarav+&location=+delhi&minPrice=1000&styles=Studio,Outdoor&styles=Candid&sortBy=price-low-high&page=4", nil)
	c.Set("response_meta", map[string]interface{}{})
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, " aarav ", mockSvc.lastQuery.Search)
	assert.Equal(t, " delhi", mockSvc.lastQuery.Location)
	require.NotNil(t, mockSvc.lastQuery.MinPrice)
	assert.Equal(t, 1000.0, *mockSvc.lastQuery.MinPrice)
	assert.Nil(t, mockSvc.lastQuery.MaxPrice)
	assert.Equal(t, []string{"Studio", "Outdoor", "Candid"}, mockSvc.lastQuery.Styles)
	assert.Equal(t, "price-low-high", mockSvc.lastQuery.SortBy)
	assert.Equal(t, 4, mockSvc.lastQuery.Page)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalItems)
	assert.Equal(t, true, env.Meta[middleware.MetaResetPage])
	assert.Contains(t, string(env.Data), "₹5,000")
}

func TestPhotographerHandlerListRejectsBadQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPhotographerHandler(&catalogServiceMock{}, nil, nil)

	for _, path := range []string{
		"/photographers?minRating=9",
		"/photographers?minPrice=cheap",
		"/photographers?limit=500",
		"/photographers?maxPrice=-1",
	} {
		c, w := newGinContext(http.MethodGet, path, nil)
		h.List(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, w).Error.Code, path)
	}
}

func TestPhotographerHandlerListServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPhotographerHandler(&catalogServiceMock{err: appErrors.ErrUnavailable}, nil, nil)

	c, w := newGinContext(http.MethodGet, "/photographers", nil)
	h.List(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPhotographerHandlerFacets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPhotographerHandler(&catalogServiceMock{}, nil, nil)

	c, w := newGinContext(http.MethodGet, "/photographers/facets", nil)
	h.Facets(c)

	require.Equal(t, http.StatusOK, w.Code)
	var facets models.Facets
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &facets))
	assert.Equal(t, []string{"Delhi"}, facets.Locations)
	assert.Len(t, facets.SortOptions, len(models.SortOptions))
}

func TestPhotographerHandlerDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &catalogServiceMock{detail: &dto.PhotographerDetail{Photographer: models.Photographer{ID: 7, Name: "Isha Rao"}, FormattedPrice: "₹15,000"}}
	h := NewPhotographerHandler(mockSvc, nil, nil)

	c, w := newGinContext(http.MethodGet, "/photographers/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	h.Detail(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), mockSvc.gotID)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), "Isha Rao")
}

func TestPhotographerHandlerDetailErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewPhotographerHandler(&catalogServiceMock{}, nil, nil)
	c, w := newGinContext(http.MethodGet, "/photographers/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Detail(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h = NewPhotographerHandler(&catalogServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "photographer 9 not found")}, nil, nil)
	c, w = newGinContext(http.MethodGet, "/photographers/9", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	h.Detail(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w).Error.Code)

	h = NewPhotographerHandler(&catalogServiceMock{err: appErrors.ErrUpstream}, nil, nil)
	c, w = newGinContext(http.MethodGet, "/photographers/9", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	h.Detail(c)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPhotographerHandlerPortfolio(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &catalogServiceMock{portfolio: &dto.PortfolioView{PhotographerID: 3, Image: "/p/2.jpg", Index: 1, Total: 3, Position: "2 / 3", HasPrevious: true, HasNext: true}}
	h := NewPhotographerHandler(mockSvc, nil, nil)

	c, w := newGinContext(http.MethodGet, "/photographers/3/portfolio/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}, {Key: "index", Value: "1"}}
	h.Portfolio(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mockSvc.gotIndex)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"position":"2 / 3"`)

	c, w = newGinContext(http.MethodGet, "/photographers/3/portfolio/first", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}, {Key: "index", Value: "first"}}
	h.Portfolio(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPhotographerHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exports := &exportServiceMock{}
	h := NewPhotographerHandler(&catalogServiceMock{}, exports, nil)

	c, w := newGinContext(http.MethodGet, "/photographers/export?format=csv&location=delhi", nil)
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exports.format)
	assert.Equal(t, "delhi", exports.query.Location)
	assert.Equal(t, `attachment; filename="photographers.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID\n1\n", w.Body.String())
}

func TestParseStyles(t *testing.T) {
	assert.Equal(t, []string{}, ParseStyles(nil))
	assert.Equal(t, []string{"Studio", "Outdoor"}, ParseStyles([]string{" Studio , ", "Outdoor"}))
}
