package models

// Photographer is a single directory profile. Records are produced by the
// record source and treated as read-only snapshots everywhere else.
type Photographer struct {
	ID         int64    `db:"id" json:"id"`
	Name       string   `db:"name" json:"name"`
	Location   string   `db:"location" json:"location"`
	Price      float64  `db:"price" json:"price"`
	Rating     float64  `db:"rating" json:"rating"`
	Styles     []string `db:"-" json:"styles"`
	Tags       []string `db:"-" json:"tags"`
	Bio        string   `db:"bio" json:"bio"`
	ProfilePic string   `db:"profile_pic" json:"profilePic,omitempty"`
	Reviews    []Review `db:"-" json:"reviews"`
	Portfolio  []string `db:"-" json:"portfolio"`
}

// Review is a client review in submission order.
type Review struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Date    string  `json:"date"`
	Comment string  `json:"comment"`
}

// RatingBucket is one star level of a rating breakdown.
type RatingBucket struct {
	Stars      int     `json:"stars"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingBreakdown summarises reviews per star level.
type RatingBreakdown struct {
	Average float64        `json:"average"`
	Total   int            `json:"total"`
	Buckets []RatingBucket `json:"buckets"`
}
