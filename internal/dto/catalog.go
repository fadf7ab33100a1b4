package dto

import (
	"time"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
)

// CatalogQuery mirrors the supported listing query parameters. Nil price
// bounds fall back to the observed price range of the catalog.
type CatalogQuery struct {
	Search    string   `form:"search" validate:"max=200"`
	MinPrice  *float64 `form:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"maxPrice" validate:"omitempty,gte=0"`
	MinRating float64  `form:"minRating" validate:"gte=0,lte=5"`
	Styles    []string `form:"-"`
	Location  string   `form:"location" validate:"max=200"`
	SortBy    string   `form:"sortBy"`
	Page      int      `form:"page" validate:"gte=0"`
	Limit     int      `form:"limit" validate:"gte=0,lte=100"`
}

// PhotographerCard is the listing representation of a photographer.
type PhotographerCard struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Price          float64  `json:"price"`
	FormattedPrice string   `json:"formattedPrice"`
	Rating         float64  `json:"rating"`
	Styles         []string `json:"styles"`
	Tags           []string `json:"tags"`
	ProfilePic     string   `json:"profilePic,omitempty"`
	ReviewCount    int      `json:"reviewCount"`
}

// CatalogPage is a page of listing cards and the filters that produced it.
type CatalogPage struct {
	Items      []PhotographerCard  `json:"items"`
	Filters    models.FilterSpec   `json:"filters"`
	Pagination models.PageMetadata `json:"-"`
	ResetPage  bool                `json:"-"`
}

// ReviewView is a review with a display date.
type ReviewView struct {
	models.Review
	FormattedDate string `json:"formattedDate"`
}

// PhotographerDetail is the profile page payload.
type PhotographerDetail struct {
	models.Photographer
	FormattedPrice  string                 `json:"formattedPrice"`
	Reviews         []ReviewView           `json:"reviews"`
	RatingBreakdown models.RatingBreakdown `json:"ratingBreakdown"`
}

// PortfolioView is one image of a photographer's portfolio with its
// neighbours. Navigation does not wrap around.
type PortfolioView struct {
	PhotographerID int64  `json:"photographerId"`
	Image          string `json:"image"`
	Index          int    `json:"index"`
	Total          int    `json:"total"`
	Position       string `json:"position"`
	HasPrevious    bool   `json:"hasPrevious"`
	HasNext        bool   `json:"hasNext"`
	PreviousIndex  *int   `json:"previousIndex,omitempty"`
	NextIndex      *int   `json:"nextIndex,omitempty"`
}

// SnapshotStatus describes the loaded record snapshot.
type SnapshotStatus struct {
	Loaded   bool      `json:"loaded"`
	Records  int       `json:"records"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt,omitempty"`
}

// RefreshResponse acknowledges a scheduled catalog refresh.
type RefreshResponse struct {
	Scheduled bool           `json:"scheduled"`
	Snapshot  SnapshotStatus `json:"snapshot"`
}
