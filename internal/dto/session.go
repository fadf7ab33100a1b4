package dto

import (
	"time"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
)

// CreateSessionRequest optionally sizes the pages of a new browse session.
type CreateSessionRequest struct {
	ItemsPerPage int `json:"itemsPerPage" validate:"gte=0,lte=100"`
}

// SessionActionRequest dispatches one browse action.
type SessionActionRequest struct {
	Type    string               `json:"type" validate:"required"`
	Payload SessionActionPayload `json:"payload"`
}

// SessionActionPayload carries the argument of an action. Only the field
// matching the action type is read.
type SessionActionPayload struct {
	Search       string   `json:"search" validate:"max=200"`
	MinPrice     float64  `json:"minPrice" validate:"gte=0"`
	MaxPrice     float64  `json:"maxPrice" validate:"gte=0"`
	MinRating    float64  `json:"minRating" validate:"gte=0,lte=5"`
	Styles       []string `json:"styles"`
	Location     string   `json:"location" validate:"max=200"`
	SortBy       string   `json:"sortBy"`
	Page         int      `json:"page"`
	ItemsPerPage int      `json:"itemsPerPage" validate:"gte=0,lte=100"`
}

// SessionView is a browse session with its current page of results.
type SessionView struct {
	ID         string              `json:"id"`
	Filters    models.FilterSpec   `json:"filters"`
	Items      []PhotographerCard  `json:"items"`
	Pagination models.PageMetadata `json:"pagination"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}
