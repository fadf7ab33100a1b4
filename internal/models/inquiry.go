package models

import "time"

// InquiryStatus tracks delivery of an inquiry to the photographer.
type InquiryStatus string

const (
	InquiryStatusQueued InquiryStatus = "queued"
	InquiryStatusSent   InquiryStatus = "sent"
	InquiryStatusFailed InquiryStatus = "failed"
)

// EventTypes lists the event types offered on the inquiry form.
var EventTypes = []string{
	"Wedding",
	"Pre-wedding",
	"Maternity",
	"Newborn",
	"Birthday",
	"Family Portrait",
	"Corporate Event",
	"Other",
}

// BudgetRanges lists the selectable budget brackets.
var BudgetRanges = []string{
	"under-10k",
	"10k-25k",
	"25k-50k",
	"50k-100k",
	"above-100k",
}

// Inquiry is a booking request sent to a photographer.
type Inquiry struct {
	ID             string        `db:"id" json:"id"`
	PhotographerID int64         `db:"photographer_id" json:"photographerId"`
	Name           string        `db:"name" json:"name"`
	Email          string        `db:"email" json:"email"`
	Phone          string        `db:"phone" json:"phone"`
	EventType      string        `db:"event_type" json:"eventType"`
	EventDate      time.Time     `db:"event_date" json:"eventDate"`
	Location       string        `db:"location" json:"location"`
	GuestCount     *int          `db:"guest_count" json:"guestCount,omitempty"`
	Budget         *string       `db:"budget" json:"budget,omitempty"`
	Message        string        `db:"message" json:"message"`
	Status         InquiryStatus `db:"status" json:"status"`
	Error          *string       `db:"error_message" json:"error,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	SentAt         *time.Time    `db:"sent_at" json:"sentAt,omitempty"`
}
