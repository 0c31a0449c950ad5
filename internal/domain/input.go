package domain

// Only the fields the admin console checks locally carry validate tags; everything else is
// left to the gateway.

// CategoryInput is the body sent to the gateway to create or update a category.
type CategoryInput struct {
	Name        string         `json:"name" validate:"notblank"`
	Slug        string         `json:"slug,omitempty"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Gradient    string         `json:"gradient,omitempty"`
	Status      CategoryStatus `json:"status,omitempty"`
}

// ItemInput is the body sent to the gateway to create or update an item.
// Ratings is sent as null when no sub-score was given, which clears stored sub-scores.
type ItemInput struct {
	Title           string      `json:"title" validate:"notblank"`
	Description     string      `json:"description" validate:"notblank"`
	Slug            string      `json:"slug,omitempty"`
	Category        string      `json:"category" validate:"notblank"`
	Status          ItemStatus  `json:"status,omitempty"`
	Featured        bool        `json:"featured"`
	ReleaseDate     string      `json:"releaseDate,omitempty"`
	Developer       string      `json:"developer,omitempty"`
	Platforms       []string    `json:"platforms"`
	Genres          []string    `json:"genres"`
	KeyFeatures     []string    `json:"keyFeatures"`
	StorySummary    string      `json:"storySummary,omitempty"`
	Highlights      []string    `json:"highlights"`
	AuthorReview    string      `json:"authorReview,omitempty"`
	Screenshots     []string    `json:"screenshots"`
	SoundtrackLinks []string    `json:"soundtrackLinks"`
	Ratings         *Ratings    `json:"ratings"`
	Characters      []Character `json:"characters" validate:"dive"`
}
