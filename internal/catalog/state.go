package catalog

import (
	"github.com/noah-isme/photographer-catalog-api/internal/models"
)

// ActionType names a browse state transition.
type ActionType string

const (
	ActionLoadRecords     ActionType = "load_records"
	ActionSetSearch       ActionType = "set_search"
	ActionSetPriceRange   ActionType = "set_price_range"
	ActionSetRating       ActionType = "set_rating"
	ActionSetStyles       ActionType = "set_styles"
	ActionSetLocation     ActionType = "set_location"
	ActionSetSortBy       ActionType = "set_sort_by"
	ActionClearFilters    ActionType = "clear_filters"
	ActionSetPage         ActionType = "set_page"
	ActionSetItemsPerPage ActionType = "set_items_per_page"
)

// Action is a single state transition request. Only the fields relevant to
// Type are read.
type Action struct {
	Type         ActionType
	Records      []models.Photographer
	Search       string
	MinPrice     float64
	MaxPrice     float64
	MinRating    float64
	Styles       []string
	Location     string
	SortBy       models.SortOption
	Page         int
	ItemsPerPage int
}

// State is an immutable browse state. Reduce never modifies a State in
// place; it always returns a new value.
type State struct {
	Records    []models.Photographer
	Filters    models.FilterSpec
	Pagination models.PageMetadata
	View       []models.Photographer
}

// NewState builds the initial state for records with default filters.
func NewState(records []models.Photographer, itemsPerPage int) State {
	return derive(records, DefaultFilters(records), 1, itemsPerPage)
}

// Restore rebuilds a state from persisted filters and paging.
func Restore(records []models.Photographer, filters models.FilterSpec, page, itemsPerPage int) State {
	return derive(records, filters.WithStyles(filters.Styles), page, itemsPerPage)
}

// Visible returns the records on the current page.
func (s State) Visible() []models.Photographer {
	return Paginate(s.View, s.Pagination.CurrentPage, s.Pagination.ItemsPerPage)
}

// Reduce applies action to state and returns the resulting state. Every
// filter change moves back to page 1; unknown actions return state as is.
func Reduce(state State, action Action) State {
	filters := state.Filters.WithStyles(state.Filters.Styles)
	size := state.Pagination.ItemsPerPage

	switch action.Type {
	case ActionLoadRecords:
		return derive(action.Records, filters, state.Pagination.CurrentPage, size)
	case ActionSetSearch:
		filters.Search = action.Search
	case ActionSetPriceRange:
		filters.MinPrice = action.MinPrice
		filters.MaxPrice = action.MaxPrice
	case ActionSetRating:
		filters.MinRating = action.MinRating
	case ActionSetStyles:
		filters = filters.WithStyles(action.Styles)
	case ActionSetLocation:
		filters.Location = action.Location
	case ActionSetSortBy:
		filters.SortBy = action.SortBy
	case ActionClearFilters:
		filters = DefaultFilters(state.Records)
	case ActionSetPage:
		next := state
		next.Pagination.CurrentPage = clampPage(action.Page, state.Pagination.TotalPages)
		return next
	case ActionSetItemsPerPage:
		if action.ItemsPerPage < 1 {
			return state
		}
		next := state
		next.Pagination, _ = Page(len(state.View), 1, action.ItemsPerPage)
		return next
	default:
		return state
	}
	return derive(state.Records, filters, 1, size)
}

func derive(records []models.Photographer, filters models.FilterSpec, page, itemsPerPage int) State {
	view := Apply(records, filters)
	meta, _ := Page(len(view), page, itemsPerPage)
	return State{
		Records:    records,
		Filters:    filters,
		Pagination: meta,
		View:       view,
	}
}

func clampPage(page, totalPages int) int {
	if page < 1 || totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// SetSearch builds a search action.
func SetSearch(term string) Action { return Action{Type: ActionSetSearch, Search: term} }

// SetPriceRange builds a price range action.
func SetPriceRange(min, max float64) Action {
	return Action{Type: ActionSetPriceRange, MinPrice: min, MaxPrice: max}
}

// SetRating builds a minimum rating action.
func SetRating(min float64) Action { return Action{Type: ActionSetRating, MinRating: min} }

// SetStyles builds a styles action.
func SetStyles(styles ...string) Action { return Action{Type: ActionSetStyles, Styles: styles} }

// SetLocation builds a location action.
func SetLocation(location string) Action { return Action{Type: ActionSetLocation, Location: location} }

// SetSortBy builds a sort action.
func SetSortBy(by models.SortOption) Action { return Action{Type: ActionSetSortBy, SortBy: by} }

// ClearFilters builds a clear action.
func ClearFilters() Action { return Action{Type: ActionClearFilters} }

// SetPage builds a page navigation action.
func SetPage(page int) Action { return Action{Type: ActionSetPage, Page: page} }

// SetItemsPerPage builds a page size action.
func SetItemsPerPage(size int) Action { return Action{Type: ActionSetItemsPerPage, ItemsPerPage: size} }

// LoadRecords builds an action that swaps in a new record snapshot.
func LoadRecords(records []models.Photographer) Action {
	return Action{Type: ActionLoadRecords, Records: records}
}
