package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// ItemStatus is the lifecycle state of an item.
type ItemStatus string

// Item statuses.
const (
	ItemDraft    ItemStatus = "draft"
	ItemActive   ItemStatus = "active"
	ItemInactive ItemStatus = "inactive"
)

// Valid reports whether s is a known item status.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemDraft, ItemActive, ItemInactive:
		return true
	}
	return false
}

// Item is a catalog entry owned by exactly one category.
// Its slug is unique within the owning category, not globally.
type Item struct {
	ID              string      `json:"_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Slug            string      `json:"slug"`
	CategoryID      string      `json:"category"`
	CategoryName    string      `json:"categoryName,omitempty"`
	CategorySlug    string      `json:"categorySlug,omitempty"`
	Status          ItemStatus  `json:"status,omitempty"`
	Featured        bool        `json:"featured,omitempty"`
	ReleaseDate     string      `json:"releaseDate,omitempty"`
	Developer       string      `json:"developer,omitempty"`
	Platforms       []string    `json:"platforms,omitempty"`
	Genres          []string    `json:"genres,omitempty"`
	KeyFeatures     []string    `json:"keyFeatures,omitempty"`
	StorySummary    string      `json:"storySummary,omitempty"`
	Highlights      []string    `json:"highlights,omitempty"`
	AuthorReview    string      `json:"authorReview,omitempty"`
	Screenshots     []string    `json:"screenshots,omitempty"`
	SoundtrackLinks []string    `json:"soundtrackLinks,omitempty"`
	Rating          *float64    `json:"rating,omitempty"`
	Ratings         *Ratings    `json:"ratings,omitempty"`
	Characters      []Character `json:"characters,omitempty"`
	CreatedAt       time.Time   `json:"createdAt,omitzero"`
	UpdatedAt       time.Time   `json:"updatedAt,omitzero"`
}

// Cover returns the first screenshot URL, or "" when there is none.
func (it *Item) Cover() string {
	if len(it.Screenshots) == 0 {
		return ""
	}
	return it.Screenshots[0]
}

// itemAlias drops the custom decoder to avoid recursion.
type itemAlias Item

// UnmarshalJSON decodes gateway item payloads.
// The category may arrive as an id string or a populated object, the explicit rating only counts
// when it is a JSON number, and malformed timestamps decode to the zero time.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		itemAlias
		Category  json.RawMessage `json:"category"`
		Rating    json.RawMessage `json:"rating"`
		CreatedAt json.RawMessage `json:"createdAt"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*it = Item(raw.itemAlias)
	it.CategoryID, it.CategoryName, it.CategorySlug = decodeCategoryRef(raw.Category)
	it.Rating = decodeStrictNumber(raw.Rating)
	it.CreatedAt = decodeTime(raw.CreatedAt)
	it.UpdatedAt = decodeTime(raw.UpdatedAt)
	return nil
}

func decodeCategoryRef(raw json.RawMessage) (id, name, slug string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", "", ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, "", ""
	}

	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID, obj.Name, obj.Slug
	}
	return "", "", ""
}

// decodeStrictNumber accepts only JSON numbers.
func decodeStrictNumber(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

func decodeTime(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
