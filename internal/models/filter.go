package models

// SortOption enumerates the supported catalog orderings.
type SortOption string

const (
	SortPriceLowHigh  SortOption = "price-low-high"
	SortPriceHighLow  SortOption = "price-high-low"
	SortRatingHighLow SortOption = "rating-high-low"
	SortRatingLowHigh SortOption = "rating-low-high"
	SortNameAZ        SortOption = "name-a-z"
	SortNameZA        SortOption = "name-z-a"
	SortRecentlyAdded SortOption = "recently-added"
)

// SortOptions lists every ordering in presentation order.
var SortOptions = []SortOption{
	SortRatingHighLow,
	SortRatingLowHigh,
	SortPriceLowHigh,
	SortPriceHighLow,
	SortNameAZ,
	SortNameZA,
	SortRecentlyAdded,
}

// Valid reports whether the option is a known ordering.
func (s SortOption) Valid() bool {
	for _, opt := range SortOptions {
		if opt == s {
			return true
		}
	}
	return false
}

const (
	DefaultItemsPerPage = 12
	DefaultMinPrice     = 0
	DefaultMaxPrice     = 20000
	DefaultSort         = SortRatingHighLow
)

// FilterSpec is the complete set of user-chosen catalog constraints.
type FilterSpec struct {
	Search    string     `json:"search"`
	MinPrice  float64    `json:"minPrice"`
	MaxPrice  float64    `json:"maxPrice"`
	MinRating float64    `json:"minRating"`
	Styles    []string   `json:"styles"`
	Location  string     `json:"location"`
	SortBy    SortOption `json:"sortBy"`
}

// DefaultFilterSpec returns the filters applied before the user touches any control.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Styles:   []string{},
		SortBy:   DefaultSort,
	}
}

// WithStyles returns a copy of the spec holding its own styles slice.
func (f FilterSpec) WithStyles(styles []string) FilterSpec {
	f.Styles = append([]string{}, styles...)
	return f
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PageMetadata describes the visible window over a catalog view.
type PageMetadata struct {
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
}

// Facets are the filter options derived from the full record set.
type Facets struct {
	Locations   []string     `json:"locations"`
	Styles      []string     `json:"styles"`
	PriceRange  PriceRange   `json:"priceRange"`
	SortOptions []SortOption `json:"sortOptions"`
}
