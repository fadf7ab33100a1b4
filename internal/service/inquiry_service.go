package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
	"github.com/noah-isme/photographer-catalog-api/pkg/jobs"
)

// JobTypeDeliverInquiry is the queue job type for inquiry delivery.
const JobTypeDeliverInquiry = "inquiry.deliver"

type inquiryStore interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	FindByID(ctx context.Context, id string) (*models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus, errMsg *string, sentAt *time.Time) error
}

type photographerLookup interface {
	Get(ctx context.Context, id int64) (*models.Photographer, error)
}

type jobDispatcher interface {
	EnqueueContext(ctx context.Context, job jobs.Job) error
}

// InquiryServiceConfig tunes delivery.
type InquiryServiceConfig struct {
	DeliveryDelay time.Duration
}

// InquiryService accepts booking inquiries and delivers them in the
// background.
type InquiryService struct {
	store         inquiryStore
	photographers photographerLookup
	dispatcher    jobDispatcher
	validator     *validator.Validate
	metrics       *MetricsService
	logger        *zap.Logger
	cfg           InquiryServiceConfig
	now           func() time.Time
}

// NewInquiryService constructs an InquiryService. The dispatcher is attached
// separately with SetDispatcher because the queue needs Deliver as its handler.
func NewInquiryService(store inquiryStore, photographers photographerLookup, validate *validator.Validate, metrics *MetricsService, cfg InquiryServiceConfig, logger *zap.Logger) *InquiryService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InquiryService{
		store:         store,
		photographers: photographers,
		validator:     validate,
		metrics:       metrics,
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
	}
}

// SetDispatcher attaches the queue used for delivery.
func (s *InquiryService) SetDispatcher(d jobDispatcher) {
	s.dispatcher = d
}

// Submit validates and stores an inquiry for photographerID, then queues it
// for delivery.
func (s *InquiryService) Submit(ctx context.Context, photographerID int64, req dto.CreateInquiryRequest) (*models.Inquiry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "eventDate must be YYYY-MM-DD")
	}
	if _, err := s.photographers.Get(ctx, photographerID); err != nil {
		return nil, err
	}
	if s.dispatcher == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "inquiry delivery not configured")
	}

	inquiry := &models.Inquiry{
		ID:             uuid.NewString(),
		PhotographerID: photographerID,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		EventType:      req.EventType,
		EventDate:      eventDate,
		Location:       strings.TrimSpace(req.Location),
		GuestCount:     req.GuestCount,
		Budget:         req.Budget,
		Message:        strings.TrimSpace(req.Message),
		Status:         models.InquiryStatusQueued,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.Create(ctx, inquiry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store inquiry")
	}
	s.metrics.RecordInquiry(string(models.InquiryStatusQueued))

	job := jobs.Job{ID: inquiry.ID, Type: JobTypeDeliverInquiry, Payload: inquiry.ID}
	if err := s.dispatcher.EnqueueContext(ctx, job); err != nil {
		s.markFailed(context.WithoutCancel(ctx), inquiry.ID, err)
		if ctx.Err() != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrBusy.Code, appErrors.ErrBusy.Status, "inquiry queue busy, try again")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue inquiry")
	}

	s.logger.Info("inquiry queued",
		zap.String("inquiry_id", inquiry.ID),
		zap.Int64("photographer_id", photographerID),
		zap.String("event_type", inquiry.EventType),
	)
	return inquiry, nil
}

// Get returns an inquiry by id.
func (s *InquiryService) Get(ctx context.Context, id string) (*models.Inquiry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "inquiry not found")
	}
	return s.store.FindByID(ctx, id)
}

// Deliver is the queue handler. Delivery is simulated: after the configured
// delay the inquiry is marked sent.
func (s *InquiryService) Deliver(ctx context.Context, job jobs.Job) error {
	id, ok := job.Payload.(string)
	if !ok {
		return fmt.Errorf("inquiry job %s: unexpected payload %T", job.ID, job.Payload)
	}
	if s.cfg.DeliveryDelay > 0 {
		timer := time.NewTimer(s.cfg.DeliveryDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	sentAt := s.now().UTC()
	if err := s.store.UpdateStatus(ctx, id, models.InquiryStatusSent, nil, &sentAt); err != nil {
		return fmt.Errorf("mark inquiry %s sent: %w", id, err)
	}
	s.metrics.RecordInquiry(string(models.InquiryStatusSent))
	s.logger.Info("inquiry delivered", zap.String("inquiry_id", id), zap.Int("attempt", job.Attempt+1))
	return nil
}

// HandleExhausted marks an inquiry whose delivery never succeeded as failed.
func (s *InquiryService) HandleExhausted(ctx context.Context, job jobs.Job, err error) {
	id, _ := job.Payload.(string)
	if id == "" {
		return
	}
	s.markFailed(ctx, id, err)
}

func (s *InquiryService) markFailed(ctx context.Context, id string, cause error) {
	msg := cause.Error()
	if err := s.store.UpdateStatus(ctx, id, models.InquiryStatusFailed, &msg, nil); err != nil {
		s.logger.Error("failed to mark inquiry failed", zap.String("inquiry_id", id), zap.Error(err))
		return
	}
	s.metrics.RecordInquiry(string(models.InquiryStatusFailed))
}

// MemoryInquiryStore keeps inquiries in process memory.
type MemoryInquiryStore struct {
	mu        sync.RWMutex
	inquiries map[string]models.Inquiry
}

// NewMemoryInquiryStore builds an empty in-memory inquiry store.
func NewMemoryInquiryStore() *MemoryInquiryStore {
	return &MemoryInquiryStore{inquiries: make(map[string]models.Inquiry)}
}

// Create stores an inquiry.
func (s *MemoryInquiryStore) Create(_ context.Context, inquiry *models.Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.inquiries[inquiry.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, "inquiry already exists")
	}
	s.inquiries[inquiry.ID] = *inquiry
	return nil
}

// FindByID fetches an inquiry by id.
func (s *MemoryInquiryStore) FindByID(_ context.Context, id string) (*models.Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inquiry, ok := s.inquiries[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "inquiry not found")
	}
	return &inquiry, nil
}

// UpdateStatus records a delivery outcome.
func (s *MemoryInquiryStore) UpdateStatus(_ context.Context, id string, status models.InquiryStatus, errMsg *string, sentAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inquiry, ok := s.inquiries[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "inquiry not found")
	}
	inquiry.Status = status
	inquiry.Error = errMsg
	inquiry.SentAt = sentAt
	s.inquiries[id] = inquiry
	return nil
}
