package catalog

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// routeNames labels well-known static path segments.
var routeNames = map[string]string{
	"movies":     "Movies",
	"series":     "TV Series",
	"anime":      "Anime",
	"games":      "Games",
	"explore":    "Explore",
	"admin":      "Admin",
	"categories": "Categories",
	"items":      "Items",
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Current bool   `json:"current,omitempty"`
}

// Segments splits a URL path into its non-empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Breadcrumbs resolves display labels for each segment of path.
// Lookup order: names fetched from the source, the static route table, then the raw segment
// capitalised. Fetch failures are logged and ignored; the trail is always returned.
func (r *Resolver) Breadcrumbs(ctx context.Context, path string) []Crumb {
	segments := Segments(path)
	if len(segments) == 0 {
		return []Crumb{}
	}
	return BuildTrail(segments, r.dynamicNames(ctx, segments))
}

// dynamicNames builds the slug to name map for the segments of a path.
func (r *Resolver) dynamicNames(ctx context.Context, segments []string) map[string]string {
	names := make(map[string]string)

	categories, err := r.source.Categories(ctx)
	if err != nil {
		r.logger.Debug("breadcrumb category names unavailable", "error", err)
		return names
	}
	for _, c := range categories {
		names[c.Slug] = c.Name
	}

	if len(segments) < 2 || segments[0] == "admin" {
		return names
	}

	category, ok := FindCategory(categories, segments[0])
	if !ok {
		return names
	}

	items, err := r.source.ItemsByCategory(ctx, category.ID)
	if err != nil {
		r.logger.Debug("breadcrumb item names unavailable", "category", category.Slug, "error", err)
		return names
	}
	if item, ok := FindItem(items, segments[1]); ok {
		names[segments[1]] = item.Title
	}

	return names
}

// BuildTrail labels segments using names, falling back to the static table and capitalisation.
func BuildTrail(segments []string, names map[string]string) []Crumb {
	trail := make([]Crumb, len(segments))
	for i, seg := range segments {
		trail[i] = Crumb{
			Label:   label(seg, names),
			Href:    "/" + strings.Join(segments[:i+1], "/"),
			Current: i == len(segments)-1,
		}
	}
	return trail
}

func label(seg string, names map[string]string) string {
	if name := names[seg]; name != "" {
		return name
	}
	if name, ok := routeNames[seg]; ok {
		return name
	}
	return capitalize(seg)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
