package models

import "time"

// BrowseSession is the persisted part of a catalog browsing state. The view
// itself is derived again from the current snapshot on every read.
type BrowseSession struct {
	ID           string     `json:"id"`
	Filters      FilterSpec `json:"filters"`
	CurrentPage  int        `json:"currentPage"`
	ItemsPerPage int        `json:"itemsPerPage"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
