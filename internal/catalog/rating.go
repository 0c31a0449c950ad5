// Package catalog resolves slugs to catalog entities and shapes item lists for display.
package catalog

import (
	"math"

	"github.com/echoverse/echo-web/internal/domain"
)

// subScoreCount is the fixed denominator of the sub-score mean.
// Missing sub-scores count as zero rather than being excluded.
const subScoreCount = 4

// Rating is an aggregated item rating.
// The zero value means no rating is available, which is distinct from a real 0.
type Rating struct {
	Value     float64
	Available bool
}

// Unavailable is the sentinel for "no rating".
var Unavailable = Rating{}

// OrZero returns the value, or 0 when no rating is available.
func (r Rating) OrZero() float64 {
	if !r.Available {
		return 0
	}
	return r.Value
}

// Rounded returns the value rounded half-up and whether a rating is available.
func (r Rating) Rounded() (int, bool) {
	if !r.Available {
		return 0, false
	}
	return RoundHalfUp(r.Value), true
}

// Aggregate computes the display rating from an explicit overall rating and sub-scores.
// An explicit rating wins, including zero; otherwise the sub-scores are averaged over four.
func Aggregate(explicit *float64, ratings *domain.Ratings) Rating {
	if explicit != nil && !math.IsNaN(*explicit) {
		return Rating{Value: *explicit, Available: true}
	}
	if ratings != nil {
		return Rating{Value: ratings.Sum() / subScoreCount, Available: true}
	}
	return Unavailable
}

// ItemRating aggregates the rating of an item. A nil item has no rating.
func ItemRating(it *domain.Item) Rating {
	if it == nil {
		return Unavailable
	}
	return Aggregate(it.Rating, it.Ratings)
}

// RoundHalfUp rounds to the nearest integer with halves going up (3.5 -> 4, -2.5 -> -2).
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
