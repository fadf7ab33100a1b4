package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/middleware"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	"github.com/noah-isme/photographer-catalog-api/internal/service"
	"github.com/noah-isme/photographer-catalog-api/pkg/jobs"
	"github.com/noah-isme/photographer-catalog-api/pkg/source"
)

var upstreamRecords = []models.Photographer{
	{ID: 1, Name: "Aarav Mehta", Location: "Delhi", Price: 5000, Rating: 4.5, Styles: []string{"Outdoor"}, Portfolio: []string{"/a.jpg", "/b.jpg"}},
	{ID: 2, Name: "Isha Rao", Location: "Mumbai", Price: 15000, Rating: 3.0, Styles: []string{"Studio"}},
	{ID: 3, Name: "Chirag Shah", Location: "Pune", Price: 30000, Rating: 4.9, Styles: []string{"Studio", "Outdoor"}},
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/photographers", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(upstreamRecords)
	})
	mux.HandleFunc("/photographers/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type apiHarness struct {
	router  *gin.Engine
	catalog *service.CatalogService
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	upstream := newUpstream(t)

	metrics := service.NewMetricsService()
	catalogSvc := service.NewCatalogService(source.NewClient(upstream.URL, time.Second, nil), nil, metrics,
		service.CatalogServiceConfig{ItemsPerPage: 2, RefreshDebounce: 10 * time.Millisecond}, nil)
	t.Cleanup(catalogSvc.Stop)

	inquiries := service.NewInquiryService(service.NewMemoryInquiryStore(), catalogSvc, nil, metrics, service.InquiryServiceConfig{}, nil)
	inquiries.SetDispatcher(noopDispatcher{})
	sessions := service.NewSessionService(catalogSvc, service.NewMemorySessionStore(time.Hour), nil, metrics, nil)

	router := gin.New()
	router.Use(middleware.WithResponseMeta(), middleware.Metrics(metrics))
	Routes{
		Photographers:  NewPhotographerHandler(catalogSvc, service.NewExportService(catalogSvc, nil, "", nil), nil),
		Inquiries:      NewInquiryHandler(inquiries),
		Sessions:       NewSessionHandler(sessions),
		Catalog:        NewCatalogHandler(catalogSvc),
		Ops:            NewOpsHandler(metrics, catalogSvc),
		RequireCatalog: middleware.RequireCatalog(catalogSvc),
	}.Register(router, "/api/v1")

	return &apiHarness{router: router, catalog: catalogSvc}
}

func (h *apiHarness) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestRoutesBeforeLoad(t *testing.T) {
	h := newAPIHarness(t)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodGet, "/ready", nil).Code)

	w := h.do(t, http.MethodGet, "/api/v1/photographers", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "CATALOG_UNAVAILABLE", decodeEnvelope(t, w).Error.Code)
}

func TestRoutesBrowse(t *testing.T) {
	h := newAPIHarness(t)
	require.NoError(t, h.catalog.Load(context.Background()))
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/ready", nil).Code)

	w := h.do(t, http.MethodGet, "/api/v1/photographers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, models.PageMetadata{CurrentPage: 1, ItemsPerPage: 2, TotalItems: 3, TotalPages: 2}, *env.Pagination)
	var page dto.CatalogPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].ID)
	assert.Equal(t, 30000.0, page.Filters.MaxPrice)

	w = h.do(t, http.MethodGet, "/api/v1/photographers?page=9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	assert.Equal(t, 1, env.Pagination.CurrentPage)
	assert.Equal(t, true, env.Meta[middleware.MetaResetPage])

	w = h.do(t, http.MethodGet, "/api/v1/photographers?styles=Studio&sortBy=price-low-high", nil)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, []int64{2, 3}, []int64{page.Items[0].ID, page.Items[1].ID})

	w = h.do(t, http.MethodGet, "/api/v1/photographers/facets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"locations":["Delhi","Mumbai","Pune"]`)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/v1/photographers/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/v1/photographers/42", nil).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/v1/photographers/1/portfolio/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/v1/photographers/1/portfolio/2", nil).Code)

	w = h.do(t, http.MethodGet, "/api/v1/photographers/export?format=csv&location=pune", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, strings.Count(w.Body.String(), "\n"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
}

func TestRoutesSessionFlow(t *testing.T) {
	h := newAPIHarness(t)
	require.NoError(t, h.catalog.Load(context.Background()))

	w := h.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var view dto.SessionView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &view))
	require.NotEmpty(t, view.ID)

	w = h.do(t, http.MethodPost, "/api/v1/sessions/"+view.ID+"/actions", []byte(`{"type":"set_page","payload":{"page":2}}`))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &view))
	assert.Equal(t, 2, view.Pagination.CurrentPage)
	require.Len(t, view.Items, 1)

	w = h.do(t, http.MethodPost, "/api/v1/sessions/"+view.ID+"/actions", []byte(`{"type":"set_location","payload":{"location":"mum"}}`))
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &view))
	assert.Equal(t, 1, view.Pagination.CurrentPage)
	assert.Equal(t, 1, view.Pagination.TotalItems)

	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/v1/sessions/unknown", nil).Code)
}

func TestRoutesRefreshAndMetrics(t *testing.T) {
	h := newAPIHarness(t)
	require.NoError(t, h.catalog.Load(context.Background()))

	w := h.do(t, http.MethodPost, "/api/v1/admin/catalog/refresh", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"scheduled":true`)
	require.Eventually(t, func() bool { return !h.catalog.RefreshPending() }, time.Second, 5*time.Millisecond)

	w = h.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalog_snapshot_records 3")
}

type noopDispatcher struct{}

func (noopDispatcher) EnqueueContext(ctx context.Context, job jobs.Job) error { return nil }
