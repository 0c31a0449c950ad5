package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_UnmarshalCategoryAsID(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"_id":"i1","title":"Matrix","slug":"matrix","category":"c1"}`), &it)
	require.NoError(t, err)

	assert.Equal(t, "i1", it.ID)
	assert.Equal(t, "c1", it.CategoryID)
	assert.Empty(t, it.CategoryName)
}

func TestItem_UnmarshalPopulatedCategory(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"_id":"i1","category":{"_id":"c1","name":"Movies","slug":"movies"}}`), &it)
	require.NoError(t, err)

	assert.Equal(t, "c1", it.CategoryID)
	assert.Equal(t, "Movies", it.CategoryName)
	assert.Equal(t, "movies", it.CategorySlug)
}

func TestItem_UnmarshalRating(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *float64
	}{
		{"number", `{"rating":4.5}`, Float(4.5)},
		{"zero is kept", `{"rating":0}`, Float(0)},
		{"string ignored", `{"rating":"4"}`, nil},
		{"null ignored", `{"rating":null}`, nil},
		{"missing", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it Item
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &it))
			assert.Equal(t, tt.want, it.Rating)
		})
	}
}

func TestItem_UnmarshalTimestamps(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"createdAt":"2024-03-01T10:00:00.000Z","updatedAt":"yesterday"}`), &it)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), it.CreatedAt.UTC())
	assert.True(t, it.UpdatedAt.IsZero())
}

func TestItem_MarshalSendsCategoryID(t *testing.T) {
	it := Item{Title: "Matrix", CategoryID: "c1"}

	data, err := json.Marshal(it)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"category":"c1"`)
	assert.NotContains(t, string(data), "createdAt")
}

func TestItem_Cover(t *testing.T) {
	it := Item{Screenshots: []string{"a.png", "b.png"}}
	assert.Equal(t, "a.png", it.Cover())

	empty := Item{}
	assert.Empty(t, empty.Cover())
}

func TestRatings_LenientDecode(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"ratings":{"story":4,"graphics":"3.5","gameplay":"","replayability":true}}`), &it)
	require.NoError(t, err)
	require.NotNil(t, it.Ratings)

	assert.Equal(t, Float(4), it.Ratings.Story)
	assert.Equal(t, Float(3.5), it.Ratings.Graphics)
	assert.Nil(t, it.Ratings.Gameplay)
	assert.Nil(t, it.Ratings.Replayability)
	assert.InDelta(t, 7.5, it.Ratings.Sum(), 1e-9)
}

func TestRatings_Any(t *testing.T) {
	assert.False(t, (*Ratings)(nil).Any())
	assert.False(t, (&Ratings{Story: Float(0)}).Any())
	assert.True(t, (&Ratings{Gameplay: Float(2)}).Any())
}

func TestItemStatus_Valid(t *testing.T) {
	assert.True(t, ItemDraft.Valid())
	assert.True(t, ItemActive.Valid())
	assert.True(t, ItemInactive.Valid())
	assert.False(t, ItemStatus("archived").Valid())
}

func TestCategory_Defaults(t *testing.T) {
	c := Category{ID: "c1"}

	assert.Equal(t, DefaultGradient, c.DisplayGradient())
	assert.Equal(t, DefaultIcon, c.DisplayIcon())
	assert.Equal(t, "c1", c.PathKey())

	c.Slug = "movies"
	assert.Equal(t, "movies", c.PathKey())
}
