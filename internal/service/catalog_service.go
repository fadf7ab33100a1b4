package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/photographer-catalog-api/internal/catalog"
	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
	"github.com/noah-isme/photographer-catalog-api/pkg/format"
	"github.com/noah-isme/photographer-catalog-api/pkg/source"
)

const (
	snapshotCacheKey   = "snapshot"
	refreshDebounceKey = "refresh"
	maxItemsPerPage    = 100
)

type recordSource interface {
	List(ctx context.Context) ([]models.Photographer, error)
	Get(ctx context.Context, id int64) (*models.Photographer, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogServiceConfig tunes snapshot behaviour.
type CatalogServiceConfig struct {
	SourceName      string
	ItemsPerPage    int
	CacheTTL        time.Duration
	RefreshDebounce time.Duration
	RefreshTimeout  time.Duration
}

// CatalogService owns the in-memory photographer snapshot and answers every
// catalog read from it.
type CatalogService struct {
	source    recordSource
	cache     snapshotCache
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       CatalogServiceConfig
	debouncer *catalog.Debouncer

	fetchMu sync.Mutex

	mu       sync.RWMutex
	records  []models.Photographer
	index    map[int64]int
	loadedAt time.Time
	loaded   bool
}

// NewCatalogService constructs a CatalogService. cache and metrics may be nil.
func NewCatalogService(src recordSource, cache snapshotCache, metrics *MetricsService, cfg CatalogServiceConfig, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = models.DefaultItemsPerPage
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 30 * time.Second
	}
	if cfg.SourceName == "" {
		cfg.SourceName = "http"
	}
	return &CatalogService{
		source:    src,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		debouncer: catalog.NewDebouncer(cfg.RefreshDebounce),
	}
}

// Load installs the initial snapshot, preferring a cached copy over a fetch.
func (s *CatalogService) Load(ctx context.Context) error {
	if s.cache != nil {
		var cached []models.Photographer
		hit, err := s.cache.Get(ctx, snapshotCacheKey, &cached)
		if err != nil {
			s.logger.Warn("snapshot cache unavailable", zap.Error(err))
		}
		if hit {
			s.install(cached)
			s.metrics.RecordRefresh("cache")
			s.logger.Info("catalog snapshot restored from cache", zap.Int("records", len(cached)))
			return nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the full record set and swaps it in. On failure the
// previous snapshot, if any, stays in place.
func (s *CatalogService) Refresh(ctx context.Context) error {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	start := time.Now()
	records, err := s.source.List(ctx)
	s.metrics.ObserveSourceFetch(s.cfg.SourceName, time.Since(start), err)
	if err != nil {
		s.metrics.RecordRefresh("error")
		s.logger.Error("catalog refresh failed", zap.String("source", s.cfg.SourceName), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	s.install(records)
	s.metrics.RecordRefresh("success")
	s.logger.Info("catalog snapshot refreshed",
		zap.String("source", s.cfg.SourceName),
		zap.Int("records", len(records)),
		zap.Duration("duration", time.Since(start)),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, snapshotCacheKey, records, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("failed to cache catalog snapshot", zap.Error(err))
		}
	}
	return nil
}

// ScheduleRefresh requests a refresh after the debounce delay. Requests
// arriving within the delay collapse into a single fetch.
func (s *CatalogService) ScheduleRefresh(reason string) {
	s.logger.Debug("catalog refresh requested", zap.String("reason", reason))
	s.debouncer.Schedule(refreshDebounceKey, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RefreshTimeout)
		defer cancel()
		_ = s.Refresh(ctx)
	})
}

// RefreshPending reports whether a debounced refresh is waiting to run.
func (s *CatalogService) RefreshPending() bool {
	return s.debouncer.Pending(refreshDebounceKey)
}

// Stop cancels any pending debounced refresh.
func (s *CatalogService) Stop() {
	s.debouncer.Stop()
}

func (s *CatalogService) install(records []models.Photographer) {
	if records == nil {
		records = []models.Photographer{}
	}
	index := make(map[int64]int, len(records))
	for i, record := range records {
		index[record.ID] = i
	}
	now := time.Now().UTC()

	s.mu.Lock()
	s.records = records
	s.index = index
	s.loadedAt = now
	s.loaded = true
	s.mu.Unlock()

	s.metrics.SetSnapshot(len(records), now)
}

// Ready reports whether a snapshot has been installed.
func (s *CatalogService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Status describes the current snapshot.
func (s *CatalogService) Status() dto.SnapshotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.SnapshotStatus{
		Loaded:   s.loaded,
		Records:  len(s.records),
		Source:   s.cfg.SourceName,
		LoadedAt: s.loadedAt,
	}
}

// Records returns the current snapshot. The slice is shared and must not be
// modified.
func (s *CatalogService) Records() ([]models.Photographer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, appErrors.ErrUnavailable
	}
	return s.records, nil
}

// ItemsPerPage returns the configured default page size.
func (s *CatalogService) ItemsPerPage() int {
	return s.cfg.ItemsPerPage
}

// ResolveFilters turns listing query parameters into a complete filter spec.
// Price bounds default to the observed range of the snapshot.
func ResolveFilters(records []models.Photographer, query dto.CatalogQuery) (models.FilterSpec, error) {
	spec := catalog.DefaultFilters(records)
	spec.Search = query.Search
	spec.Location = query.Location
	spec.MinRating = query.MinRating
	spec = spec.WithStyles(query.Styles)
	if query.MinPrice != nil {
		spec.MinPrice = *query.MinPrice
	}
	if query.MaxPrice != nil {
		spec.MaxPrice = *query.MaxPrice
	}
	if query.SortBy != "" {
		sortBy := models.SortOption(query.SortBy)
		if !sortBy.Valid() {
			return models.FilterSpec{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported sortBy %q", query.SortBy))
		}
		spec.SortBy = sortBy
	}
	return spec, nil
}

// List returns one page of the filtered and sorted catalog.
func (s *CatalogService) List(ctx context.Context, query dto.CatalogQuery) (*dto.CatalogPage, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	spec, err := ResolveFilters(records, query)
	if err != nil {
		return nil, err
	}
	limit := query.Limit
	if limit <= 0 {
		limit = s.cfg.ItemsPerPage
	}
	if limit > maxItemsPerPage {
		limit = maxItemsPerPage
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}

	result := catalog.Query(records, spec, page, limit)
	return &dto.CatalogPage{
		Items:      Cards(result.Items),
		Filters:    spec,
		Pagination: result.Page,
		ResetPage:  result.ResetPage,
	}, nil
}

// View returns the full filtered and sorted view for query, unpaginated.
func (s *CatalogService) View(ctx context.Context, query dto.CatalogQuery) ([]models.Photographer, models.FilterSpec, error) {
	records, err := s.Records()
	if err != nil {
		return nil, models.FilterSpec{}, err
	}
	spec, err := ResolveFilters(records, query)
	if err != nil {
		return nil, models.FilterSpec{}, err
	}
	return catalog.Apply(records, spec), spec, nil
}

// Facets returns the filter options of the current snapshot.
func (s *CatalogService) Facets(ctx context.Context) (models.Facets, error) {
	records, err := s.Records()
	if err != nil {
		return models.Facets{}, err
	}
	return catalog.BuildFacets(records), nil
}

// Get returns one photographer. Records missing from the snapshot are
// looked up at the source so newly added profiles resolve before the next
// refresh.
func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Photographer, error) {
	s.mu.RLock()
	if i, ok := s.index[id]; ok {
		record := s.records[i]
		s.mu.RUnlock()
		return &record, nil
	}
	s.mu.RUnlock()

	start := time.Now()
	record, err := s.source.Get(ctx, id)
	s.metrics.ObserveSourceFetch(s.cfg.SourceName, time.Since(start), err)
	if err != nil {
		return nil, mapSourceError(err, id)
	}
	return record, nil
}

// Detail returns the profile page payload for one photographer.
func (s *CatalogService) Detail(ctx context.Context, id int64) (*dto.PhotographerDetail, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews := make([]dto.ReviewView, 0, len(record.Reviews))
	for _, review := range record.Reviews {
		reviews = append(reviews, dto.ReviewView{Review: review, FormattedDate: format.Date(review.Date)})
	}
	return &dto.PhotographerDetail{
		Photographer:    *record,
		FormattedPrice:  format.Price(record.Price),
		Reviews:         reviews,
		RatingBreakdown: catalog.RatingBreakdown(record.Reviews),
	}, nil
}

// Portfolio returns the image at index of a photographer's portfolio.
func (s *CatalogService) Portfolio(ctx context.Context, id int64, index int) (*dto.PortfolioView, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	total := len(record.Portfolio)
	if index < 0 || index >= total {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("portfolio image %d not found", index))
	}
	view := &dto.PortfolioView{
		PhotographerID: record.ID,
		Image:          record.Portfolio[index],
		Index:          index,
		Total:          total,
		Position:       fmt.Sprintf("%d / %d", index+1, total),
		HasPrevious:    index > 0,
		HasNext:        index < total-1,
	}
	if view.HasPrevious {
		prev := index - 1
		view.PreviousIndex = &prev
	}
	if view.HasNext {
		next := index + 1
		view.NextIndex = &next
	}
	return view, nil
}

// Cards converts records to their listing representation.
func Cards(records []models.Photographer) []dto.PhotographerCard {
	cards := make([]dto.PhotographerCard, 0, len(records))
	for _, r := range records {
		cards = append(cards, dto.PhotographerCard{
			ID:             r.ID,
			Name:           r.Name,
			Location:       r.Location,
			Price:          r.Price,
			FormattedPrice: format.Price(r.Price),
			Rating:         r.Rating,
			Styles:         r.Styles,
			Tags:           r.Tags,
			ProfilePic:     r.ProfilePic,
			ReviewCount:    len(r.Reviews),
		})
	}
	return cards
}

// mapSourceError separates a missing record from a failing source.
func mapSourceError(err error, id int64) error {
	var appErr *appErrors.Error
	if source.IsNotFound(err) || (errors.As(err, &appErr) && appErr.Status == http.StatusNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("photographer %d not found", id))
	}
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
}
