package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
)

// Sort orders view in place by the given option. The sort is stable so
// records with equal keys keep their filtered order. Unknown options leave
// the view untouched.
func Sort(view []models.Photographer, by models.SortOption) {
	less := comparator(by)
	if less == nil || len(view) < 2 {
		return
	}
	sort.SliceStable(view, func(i, j int) bool {
		return less(view[i], view[j])
	})
}

func comparator(by models.SortOption) func(a, b models.Photographer) bool {
	switch by {
	case models.SortPriceLowHigh:
		return func(a, b models.Photographer) bool { return a.Price < b.Price }
	case models.SortPriceHighLow:
		return func(a, b models.Photographer) bool { return a.Price > b.Price }
	case models.SortRatingHighLow:
		return func(a, b models.Photographer) bool { return a.Rating > b.Rating }
	case models.SortRatingLowHigh:
		return func(a, b models.Photographer) bool { return a.Rating < b.Rating }
	case models.SortNameAZ:
		// collate.Collator keeps internal buffers, one per sort call.
		c := newNameCollator()
		return func(a, b models.Photographer) bool { return c.CompareString(a.Name, b.Name) < 0 }
	case models.SortNameZA:
		c := newNameCollator()
		return func(a, b models.Photographer) bool { return c.CompareString(b.Name, a.Name) < 0 }
	case models.SortRecentlyAdded:
		return func(a, b models.Photographer) bool { return a.ID > b.ID }
	default:
		return nil
	}
}

func newNameCollator() *collate.Collator {
	return collate.New(language.English)
}
