package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

const inquiryColumns = `id, photographer_id, name, email, phone, event_type, event_date, location, guest_count, budget, message, status, error_message, created_at, sent_at`

// InquiryRepository persists booking inquiries.
type InquiryRepository struct {
	db *sqlx.DB
}

// NewInquiryRepository constructs an InquiryRepository.
func NewInquiryRepository(db *sqlx.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create inserts a new inquiry.
func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	const query = `INSERT INTO inquiries (` + inquiryColumns + `)
VALUES (:id, :photographer_id, :name, :email, :phone, :event_type, :event_date, :location, :guest_count, :budget, :message, :status, :error_message, :created_at, :sent_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inquiry); err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}

// FindByID fetches an inquiry by id.
func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*models.Inquiry, error) {
	const query = `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1`
	var inquiry models.Inquiry
	if err := r.db.GetContext(ctx, &inquiry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inquiry not found")
		}
		return nil, fmt.Errorf("get inquiry %s: %w", id, err)
	}
	return &inquiry, nil
}

// UpdateStatus records a delivery outcome.
func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus, errMsg *string, sentAt *time.Time) error {
	const query = `UPDATE inquiries SET status = $2, error_message = $3, sent_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, errMsg, sentAt)
	if err != nil {
		return fmt.Errorf("update inquiry %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "inquiry not found")
	}
	return nil
}
