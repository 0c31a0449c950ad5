package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echoverse/echo-web/internal/domain"
)

func TestAggregate(t *testing.T) {
	f := domain.Float

	tests := []struct {
		name     string
		explicit *float64
		ratings  *domain.Ratings
		want     Rating
	}{
		{"explicit wins", f(3.2), &domain.Ratings{Story: f(5)}, Rating{Value: 3.2, Available: true}},
		{"explicit zero is real", f(0), nil, Rating{Value: 0, Available: true}},
		{"single sub-score divides by four", nil, &domain.Ratings{Story: f(4)}, Rating{Value: 1, Available: true}},
		{"empty sub-scores are zero", nil, &domain.Ratings{}, Rating{Value: 0, Available: true}},
		{"all sub-scores", nil, &domain.Ratings{Story: f(4), Graphics: f(5), Gameplay: f(3), Replayability: f(4)}, Rating{Value: 4, Available: true}},
		{"nothing is unavailable", nil, nil, Unavailable},
		{"NaN explicit falls through", f(math.NaN()), &domain.Ratings{Story: f(2)}, Rating{Value: 0.5, Available: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.explicit, tt.ratings)
			assert.Equal(t, tt.want.Available, got.Available)
			assert.InDelta(t, tt.want.Value, got.Value, 1e-9)
		})
	}
}

func TestItemRating_NilItem(t *testing.T) {
	assert.Equal(t, Unavailable, ItemRating(nil))
}

func TestRating_UnavailableDiffersFromZero(t *testing.T) {
	zero := Aggregate(domain.Float(0), nil)

	assert.NotEqual(t, Unavailable, zero)
	assert.Equal(t, 0.0, Unavailable.OrZero())

	_, ok := Unavailable.Rounded()
	assert.False(t, ok)
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{4.4, 4},
		{4.5, 5},
		{4.6, 5},
		{3.5, 4},
		{0.49, 0},
		{-2.5, -2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%v)", tt.in)
	}
}
