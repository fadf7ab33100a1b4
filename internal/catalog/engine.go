// Package catalog holds the pure photographer catalog pipeline: filtering,
// sorting, pagination and facet derivation over an in-memory record set,
// plus the browse state machine that drives it.
//
// Nothing in this package performs I/O or returns errors. Malformed filter
// input (for example a minimum price above the maximum) simply narrows the
// result, down to an empty view.
package catalog

import (
	"strings"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
)

// Result is a paginated window over a catalog view.
type Result struct {
	Items []models.Photographer
	Page  models.PageMetadata
	// ResetPage is set when the requested page was out of range for the
	// view and the caller should move its current page back to 1.
	ResetPage bool
}

// Apply returns the filtered and sorted view of records for spec.
func Apply(records []models.Photographer, spec models.FilterSpec) []models.Photographer {
	m := newMatcher(spec)
	view := make([]models.Photographer, 0, len(records))
	for _, record := range records {
		if m.match(record) {
			view = append(view, record)
		}
	}
	Sort(view, spec.SortBy)
	return view
}

// Paginate slices a view into the 1-indexed page of the given size.
func Paginate(view []models.Photographer, page, size int) []models.Photographer {
	if page < 1 || size < 1 {
		return []models.Photographer{}
	}
	if page > totalPages(len(view), size) {
		return []models.Photographer{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(view) {
		end = len(view)
	}
	return view[start:end:end]
}

// Page computes pagination metadata for a view of totalItems records. The
// returned metadata always has its current page within range; the boolean
// reports whether the requested page had to be reset to 1.
func Page(totalItems, currentPage, itemsPerPage int) (models.PageMetadata, bool) {
	if itemsPerPage < 1 {
		itemsPerPage = models.DefaultItemsPerPage
	}
	if totalItems < 0 {
		totalItems = 0
	}
	meta := models.PageMetadata{
		CurrentPage:  currentPage,
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages(totalItems, itemsPerPage),
	}
	reset := currentPage < 1 || (currentPage > 1 && currentPage > meta.TotalPages)
	if reset {
		meta.CurrentPage = 1
	}
	return meta, reset
}

// Query runs the whole pipeline: filter, sort, derive page metadata and
// slice out the visible window.
func Query(records []models.Photographer, spec models.FilterSpec, page, itemsPerPage int) Result {
	view := Apply(records, spec)
	meta, reset := Page(len(view), page, itemsPerPage)
	return Result{
		Items:     Paginate(view, meta.CurrentPage, meta.ItemsPerPage),
		Page:      meta,
		ResetPage: reset,
	}
}

func totalPages(totalItems, size int) int {
	if size < 1 || totalItems <= 0 {
		return 0
	}
	return (totalItems + size - 1) / size
}

// matcher holds the lower-cased, pre-computed form of a FilterSpec. Search
// and location terms are matched as given; whitespace is significant.
type matcher struct {
	search    string
	location  string
	styles    map[string]struct{}
	minPrice  float64
	maxPrice  float64
	minRating float64
}

func newMatcher(spec models.FilterSpec) matcher {
	m := matcher{
		search:    strings.ToLower(spec.Search),
		location:  strings.ToLower(spec.Location),
		minPrice:  spec.MinPrice,
		maxPrice:  spec.MaxPrice,
		minRating: spec.MinRating,
	}
	if len(spec.Styles) > 0 {
		m.styles = make(map[string]struct{}, len(spec.Styles))
		for _, style := range spec.Styles {
			m.styles[style] = struct{}{}
		}
	}
	return m
}

// match applies range and set filters before the substring scans.
func (m matcher) match(p models.Photographer) bool {
	return m.matchPrice(p) &&
		m.matchRating(p) &&
		m.matchStyles(p) &&
		m.matchLocation(p) &&
		m.matchSearch(p)
}

func (m matcher) matchPrice(p models.Photographer) bool {
	return p.Price >= m.minPrice && p.Price <= m.maxPrice
}

func (m matcher) matchRating(p models.Photographer) bool {
	return p.Rating >= m.minRating
}

// matchStyles uses OR semantics: any shared style is enough.
func (m matcher) matchStyles(p models.Photographer) bool {
	if len(m.styles) == 0 {
		return true
	}
	for _, style := range p.Styles {
		if _, ok := m.styles[style]; ok {
			return true
		}
	}
	return false
}

func (m matcher) matchLocation(p models.Photographer) bool {
	if m.location == "" {
		return true
	}
	return containsFold(p.Location, m.location)
}

func (m matcher) matchSearch(p models.Photographer) bool {
	if m.search == "" {
		return true
	}
	if containsFold(p.Name, m.search) || containsFold(p.Location, m.search) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, m.search) {
			return true
		}
	}
	return containsFold(p.Bio, m.search)
}

// containsFold reports whether lowered is a substring of s, ignoring case.
// lowered must already be lower case.
func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}
