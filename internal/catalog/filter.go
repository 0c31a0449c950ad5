package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/echoverse/echo-web/internal/domain"
)

// SortKey selects the comparator applied after filtering.
type SortKey string

// Sort keys. SortNone keeps the gateway order.
const (
	SortNone   SortKey = ""
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortTitle  SortKey = "title"
	SortRating SortKey = "rating"
)

// ParseSortKey validates a sort key from user input.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortNone, SortNewest, SortOldest, SortTitle, SortRating:
		return k, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key %q", s)
	}
}

// MinRatingFilter and MaxRatingFilter bound the rating filter value.
const (
	MinRatingFilter = 1
	MaxRatingFilter = 5
)

// RatingFilter keeps items whose rounded aggregated rating equals Value.
type RatingFilter struct {
	Enabled bool
	Value   int
}

// Filter is the list filter state.
type Filter struct {
	SearchTerm string
	CategoryID string
	Rating     RatingFilter
}

// Apply filters and sorts items and returns a new slice. The input is never modified.
// Sorting is stable, so items with equal keys keep their relative order.
func Apply(items []domain.Item, f Filter, key SortKey) []domain.Item {
	term := strings.ToLower(f.SearchTerm)

	out := make([]domain.Item, 0, len(items))
	for i := range items {
		if matches(&items[i], f, term) {
			out = append(out, items[i])
		}
	}

	if cmp := comparator(key); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func matches(it *domain.Item, f Filter, lowerTerm string) bool {
	if lowerTerm != "" &&
		!strings.Contains(strings.ToLower(it.Title), lowerTerm) &&
		!strings.Contains(strings.ToLower(it.Description), lowerTerm) {
		return false
	}

	if f.CategoryID != "" && it.CategoryID != f.CategoryID {
		return false
	}

	if f.Rating.Enabled {
		rounded, ok := ItemRating(it).Rounded()
		if !ok || rounded != f.Rating.Value {
			return false
		}
	}

	return true
}

func comparator(key SortKey) func(a, b domain.Item) int {
	switch key {
	case SortNewest:
		return func(a, b domain.Item) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortOldest:
		return func(a, b domain.Item) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortTitle:
		// Collator is not safe for concurrent use; one per sort.
		c := collate.New(language.Und)
		return func(a, b domain.Item) int { return c.CompareString(a.Title, b.Title) }
	case SortRating:
		return func(a, b domain.Item) int {
			ra, rb := ItemRating(&a).OrZero(), ItemRating(&b).OrZero()
			switch {
			case ra > rb:
				return -1
			case ra < rb:
				return 1
			default:
				return 0
			}
		}
	default:
		return nil
	}
}
