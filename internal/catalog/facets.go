package catalog

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
)

// UniqueLocations returns the distinct record locations in ascending order.
func UniqueLocations(records []models.Photographer) []string {
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record.Location != "" {
			seen[record.Location] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// UniqueStyles returns the distinct styles across all records in ascending order.
func UniqueStyles(records []models.Photographer) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		for _, style := range record.Styles {
			if style != "" {
				seen[style] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// ObservedPriceRange returns the min and max price across records, or the
// default 0..20000 range when there are none.
func ObservedPriceRange(records []models.Photographer) models.PriceRange {
	if len(records) == 0 {
		return models.PriceRange{Min: models.DefaultMinPrice, Max: models.DefaultMaxPrice}
	}
	out := models.PriceRange{Min: records[0].Price, Max: records[0].Price}
	for _, record := range records[1:] {
		if record.Price < out.Min {
			out.Min = record.Price
		}
		if record.Price > out.Max {
			out.Max = record.Price
		}
	}
	return out
}

// BuildFacets derives every filter option from the full record set.
func BuildFacets(records []models.Photographer) models.Facets {
	return models.Facets{
		Locations:   UniqueLocations(records),
		Styles:      UniqueStyles(records),
		PriceRange:  ObservedPriceRange(records),
		SortOptions: append([]models.SortOption{}, models.SortOptions...),
	}
}

// DefaultFilters returns the default filter spec with its price bounds
// seeded from the observed range of records.
func DefaultFilters(records []models.Photographer) models.FilterSpec {
	spec := models.DefaultFilterSpec()
	bounds := ObservedPriceRange(records)
	spec.MinPrice = bounds.Min
	spec.MaxPrice = bounds.Max
	return spec
}

// RatingBreakdown counts reviews per star level, five stars first. Review
// ratings are rounded to the nearest star and clamped into 1..5. With no
// reviews every percentage and the average are 0.
func RatingBreakdown(reviews []models.Review) models.RatingBreakdown {
	counts := [6]int{}
	sum := decimal.Zero
	for _, review := range reviews {
		stars := int(math.Round(review.Rating))
		if stars < 1 {
			stars = 1
		}
		if stars > 5 {
			stars = 5
		}
		counts[stars]++
		sum = sum.Add(decimal.NewFromFloat(review.Rating))
	}

	total := len(reviews)
	out := models.RatingBreakdown{Total: total, Buckets: make([]models.RatingBucket, 0, 5)}
	if total > 0 {
		out.Average = sum.Div(decimal.NewFromInt(int64(total))).Round(1).InexactFloat64()
	}
	for stars := 5; stars >= 1; stars-- {
		out.Buckets = append(out.Buckets, models.RatingBucket{
			Stars:      stars,
			Count:      counts[stars],
			Percentage: percentage(counts[stars], total),
		})
	}
	return out
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(count)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(total)))
	return ratio.Round(1).InexactFloat64()
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
