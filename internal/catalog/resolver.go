package catalog

import (
	"context"
	"log/slog"

	"github.com/echoverse/echo-web/internal/domain"
	domainerrors "github.com/echoverse/echo-web/internal/errors"
)

// Source is the slice of the gateway the resolver depends on.
type Source interface {
	// Categories returns the publicly visible categories.
	Categories(ctx context.Context) ([]domain.Category, error)
	// ItemsByCategory returns the publicly visible items of a category.
	ItemsByCategory(ctx context.Context, categoryID string) ([]domain.Item, error)
}

// Resolver maps route slugs to catalog entities.
// Nothing is cached: every call re-fetches from the source.
type Resolver struct {
	source Source
	logger *slog.Logger
}

// NewResolver creates a resolver over source.
func NewResolver(source Source, logger *slog.Logger) *Resolver {
	return &Resolver{source: source, logger: logger}
}

// CategoryResolution is a resolved category page.
type CategoryResolution struct {
	Category domain.Category
	Items    []domain.Item
}

// ItemResolution is a resolved item page. Items holds all items of the category.
type ItemResolution struct {
	Category domain.Category
	Item     domain.Item
	Items    []domain.Item
}

// FindCategory returns the first category whose slug equals slug exactly.
func FindCategory(categories []domain.Category, slug string) (*domain.Category, bool) {
	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i], true
		}
	}
	return nil, false
}

// FindItem returns the first item whose slug equals slug exactly.
func FindItem(items []domain.Item, slug string) (*domain.Item, bool) {
	for i := range items {
		if items[i].Slug == slug {
			return &items[i], true
		}
	}
	return nil, false
}

// ResolveCategory fetches categories and returns the one matching categorySlug.
// It returns a CategoryNotFound error on a miss.
func (r *Resolver) ResolveCategory(ctx context.Context, categorySlug string) (*domain.Category, error) {
	categories, err := r.source.Categories(ctx)
	if err != nil {
		return nil, err
	}

	category, ok := FindCategory(categories, categorySlug)
	if !ok {
		r.logger.Debug("category slug not resolved", "slug", categorySlug, "candidates", len(categories))
		return nil, domainerrors.CategoryNotFoundf("Category %q not found", categorySlug)
	}
	return category, nil
}

// ResolveCategoryPage resolves a category and then fetches its items.
// The item fetch starts only after the category fetch has completed.
func (r *Resolver) ResolveCategoryPage(ctx context.Context, categorySlug string) (*CategoryResolution, error) {
	category, err := r.ResolveCategory(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	items, err := r.source.ItemsByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	return &CategoryResolution{Category: *category, Items: items}, nil
}

// ResolveItem resolves a category slug and then an item slug within it.
// Misses are reported as CategoryNotFound or ItemNotFound respectively.
func (r *Resolver) ResolveItem(ctx context.Context, categorySlug, itemSlug string) (*ItemResolution, error) {
	page, err := r.ResolveCategoryPage(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	item, ok := FindItem(page.Items, itemSlug)
	if !ok {
		r.logger.Debug("item slug not resolved",
			"category", categorySlug,
			"slug", itemSlug,
			"candidates", len(page.Items),
		)
		return nil, domainerrors.ItemNotFoundf("Item %q not found in %q", itemSlug, categorySlug)
	}

	return &ItemResolution{Category: page.Category, Item: *item, Items: page.Items}, nil
}

// Related returns up to limit items from items other than the one with id excludeID.
func Related(items []domain.Item, excludeID string, limit int) []domain.Item {
	if limit <= 0 {
		return nil
	}
	out := make([]domain.Item, 0, min(limit, len(items)))
	for i := range items {
		if len(out) == limit {
			break
		}
		if items[i].ID == excludeID {
			continue
		}
		out = append(out, items[i])
	}
	return out
}
