package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/photographer-catalog-api/internal/catalog"
	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

type sessionStore interface {
	Load(ctx context.Context, id string) (*models.BrowseSession, error)
	Save(ctx context.Context, session *models.BrowseSession) error
}

type snapshotReader interface {
	Records() ([]models.Photographer, error)
	ItemsPerPage() int
}

// SessionService runs server-side browse sessions. Each action is applied
// through catalog.Reduce against the current snapshot.
type SessionService struct {
	catalog   snapshotReader
	store     sessionStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(reader snapshotReader, store sessionStore, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		catalog:   reader,
		store:     store,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Create starts a session with default filters.
func (s *SessionService) Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	records, err := s.catalog.Records()
	if err != nil {
		return nil, err
	}
	size := req.ItemsPerPage
	if size <= 0 {
		size = s.catalog.ItemsPerPage()
	}
	state := catalog.NewState(records, size)
	session := &models.BrowseSession{ID: uuid.NewString()}
	if err := s.persist(ctx, session, state); err != nil {
		return nil, err
	}
	s.logger.Debug("browse session created", zap.String("session_id", session.ID))
	return sessionView(session, state), nil
}

// Get returns the current page of a session.
func (s *SessionService) Get(ctx context.Context, id string) (*dto.SessionView, error) {
	session, state, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Pagination.CurrentPage != session.CurrentPage {
		if err := s.persist(ctx, session, state); err != nil {
			return nil, err
		}
	}
	return sessionView(session, state), nil
}

// Dispatch applies one action to a session and returns the new page.
func (s *SessionService) Dispatch(ctx context.Context, id string, req dto.SessionActionRequest) (*dto.SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	action, err := toAction(req)
	if err != nil {
		return nil, err
	}
	session, state, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}

	next := catalog.Reduce(state, action)
	if err := s.persist(ctx, session, next); err != nil {
		return nil, err
	}
	s.metrics.RecordSessionAction(string(action.Type))
	s.logger.Debug("browse session action applied",
		zap.String("session_id", id),
		zap.String("action", string(action.Type)),
		zap.Int("total_items", next.Pagination.TotalItems),
	)
	return sessionView(session, next), nil
}

func (s *SessionService) restore(ctx context.Context, id string) (*models.BrowseSession, catalog.State, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, catalog.State{}, err
	}
	records, err := s.catalog.Records()
	if err != nil {
		return nil, catalog.State{}, err
	}
	return session, catalog.Restore(records, session.Filters, session.CurrentPage, session.ItemsPerPage), nil
}

func (s *SessionService) persist(ctx context.Context, session *models.BrowseSession, state catalog.State) error {
	session.Filters = state.Filters
	session.CurrentPage = state.Pagination.CurrentPage
	session.ItemsPerPage = state.Pagination.ItemsPerPage
	session.UpdatedAt = s.now().UTC()
	return s.store.Save(ctx, session)
}

func sessionView(session *models.BrowseSession, state catalog.State) *dto.SessionView {
	return &dto.SessionView{
		ID:         session.ID,
		Filters:    state.Filters,
		Items:      Cards(state.Visible()),
		Pagination: state.Pagination,
		UpdatedAt:  session.UpdatedAt,
	}
}

// toAction maps a request onto a reducer action. Record loading is not
// exposed to clients.
func toAction(req dto.SessionActionRequest) (catalog.Action, error) {
	p := req.Payload
	switch catalog.ActionType(req.Type) {
	case catalog.ActionSetSearch:
		return catalog.SetSearch(p.Search), nil
	case catalog.ActionSetPriceRange:
		return catalog.SetPriceRange(p.MinPrice, p.MaxPrice), nil
	case catalog.ActionSetRating:
		return catalog.SetRating(p.MinRating), nil
	case catalog.ActionSetStyles:
		return catalog.SetStyles(p.Styles...), nil
	case catalog.ActionSetLocation:
		return catalog.SetLocation(p.Location), nil
	case catalog.ActionSetSortBy:
		sortBy := models.SortOption(p.SortBy)
		if !sortBy.Valid() {
			return catalog.Action{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported sortBy %q", p.SortBy))
		}
		return catalog.SetSortBy(sortBy), nil
	case catalog.ActionClearFilters:
		return catalog.ClearFilters(), nil
	case catalog.ActionSetPage:
		return catalog.SetPage(p.Page), nil
	case catalog.ActionSetItemsPerPage:
		if p.ItemsPerPage < 1 {
			return catalog.Action{}, appErrors.Clone(appErrors.ErrValidation, "itemsPerPage must be at least 1")
		}
		return catalog.SetItemsPerPage(p.ItemsPerPage), nil
	default:
		return catalog.Action{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported action %q", req.Type))
	}
}
