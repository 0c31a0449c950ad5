package domain

import "time"

// CategoryStatus is the publication state of a category.
type CategoryStatus string

// Category statuses.
const (
	CategoryActive   CategoryStatus = "active"
	CategoryInactive CategoryStatus = "inactive"
)

// DefaultGradient is used when a category carries no gradient token.
const DefaultGradient = "from-blue-500 to-purple-600"

// DefaultIcon is used when a category carries no icon reference.
const DefaultIcon = "folder"

// Category groups items under a public routing slug.
// Slugs are unique among categories by convention only.
type Category struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Gradient    string         `json:"gradient,omitempty"`
	Status      CategoryStatus `json:"status,omitempty"`
	ItemCount   int            `json:"itemCount,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitzero"`
	UpdatedAt   time.Time      `json:"updatedAt,omitzero"`
}

// IsActive reports whether the category is publicly visible.
func (c *Category) IsActive() bool {
	return c.Status == CategoryActive
}

// DisplayGradient returns the gradient token or the default.
func (c *Category) DisplayGradient() string {
	if c.Gradient == "" {
		return DefaultGradient
	}
	return c.Gradient
}

// DisplayIcon returns the icon reference or the default.
func (c *Category) DisplayIcon() string {
	if c.Icon == "" {
		return DefaultIcon
	}
	return c.Icon
}

// PathKey returns the routing key for the category: its slug, or its ID when the slug is empty.
func (c *Category) PathKey() string {
	if c.Slug != "" {
		return c.Slug
	}
	return c.ID
}

// CategoryStat is one row of the gateway's category statistics.
type CategoryStat struct {
	ID        string         `json:"_id"`
	Name      string         `json:"name"`
	Status    CategoryStatus `json:"status"`
	ItemCount int            `json:"itemCount"`
}

// ItemOverview is the gateway's aggregate item statistics.
type ItemOverview struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Draft    int `json:"draft"`
	Featured int `json:"featured"`
}
