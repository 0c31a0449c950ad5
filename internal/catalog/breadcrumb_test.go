package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"movies", "matrix"}, Segments("/movies/matrix/"))
	assert.Empty(t, Segments("/"))
	assert.Empty(t, Segments(""))
}

func TestBreadcrumbs_ResolvesDynamicNames(t *testing.T) {
	r := NewResolver(newFakeSource(), testLogger())

	trail := r.Breadcrumbs(context.Background(), "/movies/matrix")

	assert.Equal(t, []Crumb{
		{Label: "Movies", Href: "/movies"},
		{Label: "The Matrix", Href: "/movies/matrix", Current: true},
	}, trail)
}

func TestBreadcrumbs_StaticAndCapitalisedFallbacks(t *testing.T) {
	r := NewResolver(newFakeSource(), testLogger())

	trail := r.Breadcrumbs(context.Background(), "/series/unknown-show")

	assert.Equal(t, "TV Series", trail[0].Label)
	assert.Equal(t, "Unknown-show", trail[1].Label)
}

func TestBreadcrumbs_DynamicNameBeatsStaticTable(t *testing.T) {
	src := newFakeSource()
	src.categories[0].Slug = "series"
	src.categories[0].Name = "Shows"
	r := NewResolver(src, testLogger())

	trail := r.Breadcrumbs(context.Background(), "/series")
	assert.Equal(t, "Shows", trail[0].Label)
}

func TestBreadcrumbs_AdminSkipsItemLookup(t *testing.T) {
	src := newFakeSource()
	r := NewResolver(src, testLogger())

	trail := r.Breadcrumbs(context.Background(), "/admin/items")

	assert.Equal(t, "Admin", trail[0].Label)
	assert.Equal(t, "Items", trail[1].Label)
	assert.Equal(t, []string{"categories"}, src.calls)
}

func TestBreadcrumbs_SourceFailureFallsBack(t *testing.T) {
	src := newFakeSource()
	src.categoriesErr = errors.New("connection refused")
	r := NewResolver(src, testLogger())

	trail := r.Breadcrumbs(context.Background(), "/movies/matrix")

	assert.Equal(t, "Movies", trail[0].Label)
	assert.Equal(t, "Matrix", trail[1].Label)
}

func TestBreadcrumbs_ItemFailureKeepsCategoryNames(t *testing.T) {
	src := newFakeSource()
	src.itemsErr = errors.New("timeout")
	r := NewResolver(src, testLogger())

	trail := r.Breadcrumbs(context.Background(), "/games/zelda")

	assert.Equal(t, "Games", trail[0].Label)
	assert.Equal(t, "Zelda", trail[1].Label)
}

func TestBreadcrumbs_Root(t *testing.T) {
	r := NewResolver(newFakeSource(), testLogger())
	assert.Empty(t, r.Breadcrumbs(context.Background(), "/"))
}
