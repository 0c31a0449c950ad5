package service

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/echoverse/echo-web/internal/catalog"
	"github.com/echoverse/echo-web/internal/domain"
	domainerrors "github.com/echoverse/echo-web/internal/errors"
	"github.com/echoverse/echo-web/internal/icon"
)

// CatalogGateway is the read side of the gateway used by public pages.
type CatalogGateway interface {
	catalog.Source
	FeaturedItems(ctx context.Context, limit int) ([]domain.Item, error)
	SearchItems(ctx context.Context, term string) ([]domain.Item, error)
}

// CatalogOptions tunes view sizes.
type CatalogOptions struct {
	FeaturedLimit int
	RelatedLimit  int
}

// CatalogService builds the public catalog views.
type CatalogService struct {
	gateway  CatalogGateway
	resolver *catalog.Resolver
	opts     CatalogOptions
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(gw CatalogGateway, resolver *catalog.Resolver, opts CatalogOptions, logger *slog.Logger) *CatalogService {
	if opts.FeaturedLimit <= 0 {
		opts.FeaturedLimit = 10
	}
	if opts.RelatedLimit < 0 {
		opts.RelatedLimit = 0
	}
	return &CatalogService{
		gateway:  gw,
		resolver: resolver,
		opts:     opts,
		logger:   logger,
	}
}

// CategoryCard is a category as shown in grids and page headers.
type CategoryCard struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Href        string     `json:"href"`
	Description string     `json:"description,omitempty"`
	Gradient    string     `json:"gradient"`
	Icon        icon.Glyph `json:"icon"`
	IconMarkup  string     `json:"iconMarkup"`
	ItemCount   int        `json:"itemCount"`
}

// ItemCard is an item as shown in grids.
// Rating is the aggregated rating to one decimal; Stars is its half-up rounding.
type ItemCard struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Href         string   `json:"href,omitempty"`
	Description  string   `json:"description"`
	Cover        string   `json:"cover,omitempty"`
	CategoryName string   `json:"categoryName,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Stars        *int     `json:"stars,omitempty"`
}

// HomeView is the landing page.
type HomeView struct {
	Categories []CategoryCard `json:"categories"`
	Featured   []ItemCard     `json:"featured"`
}

// ExploreView lists every active category.
type ExploreView struct {
	Categories  []CategoryCard  `json:"categories"`
	Breadcrumbs []catalog.Crumb `json:"breadcrumbs"`
}

// SearchView is the result of a server-side search.
type SearchView struct {
	Query   string     `json:"query"`
	Results []ItemCard `json:"results"`
	Total   int        `json:"total"`
}

// CategoryPageQuery is the raw filter and sort state from the query string.
type CategoryPageQuery struct {
	Search   string
	Category string
	Rating   string
	Sort     string
}

// FilterEcho reports the filter state that was applied.
type FilterEcho struct {
	Search   string          `json:"search,omitempty"`
	Category string          `json:"category,omitempty"`
	Rating   *int            `json:"rating,omitempty"`
	Sort     catalog.SortKey `json:"sort,omitempty"`
}

// CategoryPageView is a category with its filtered and sorted items.
type CategoryPageView struct {
	Category    CategoryCard    `json:"category"`
	Items       []ItemCard      `json:"items"`
	Shown       int             `json:"shown"`
	Total       int             `json:"total"`
	Filter      FilterEcho      `json:"filter"`
	Empty       string          `json:"empty,omitempty"`
	Breadcrumbs []catalog.Crumb `json:"breadcrumbs"`
}

// RatingBar is one sub-score of the item rating breakdown, on a 0-5 scale.
type RatingBar struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// ItemDetail is the full item with its derived display fields.
type ItemDetail struct {
	domain.Item
	DisplayRating *float64    `json:"displayRating,omitempty"`
	Stars         *int        `json:"stars,omitempty"`
	Cover         string      `json:"cover,omitempty"`
	Breakdown     []RatingBar `json:"breakdown,omitempty"`
}

// ItemPageView is an item with related items from the same category.
type ItemPageView struct {
	Category    CategoryCard    `json:"category"`
	Item        ItemDetail      `json:"item"`
	Related     []ItemCard      `json:"related"`
	Breadcrumbs []catalog.Crumb `json:"breadcrumbs"`
}

// Link is a navigation target.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NotFoundView is shown for unknown paths and unresolved slugs.
type NotFoundView struct {
	Message string `json:"message"`
	Links   []Link `json:"links"`
}

// Home returns active categories and featured items. The two fetches run concurrently.
func (s *CatalogService) Home(ctx context.Context) (*HomeView, error) {
	var (
		categories []domain.Category
		featured   []domain.Item
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.gateway.Categories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		featured, err = s.gateway.FeaturedItems(gctx, s.opts.FeaturedLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slugs := categorySlugs(categories)
	view := &HomeView{
		Categories: categoryCards(categories),
		Featured:   make([]ItemCard, 0, len(featured)),
	}
	for i := range featured {
		view.Featured = append(view.Featured, itemCard(&featured[i], slugs[featured[i].CategoryID]))
	}
	return view, nil
}

// Explore returns active categories with display defaults applied.
func (s *CatalogService) Explore(ctx context.Context) (*ExploreView, error) {
	categories, err := s.gateway.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &ExploreView{
		Categories:  categoryCards(categories),
		Breadcrumbs: catalog.BuildTrail([]string{"explore"}, nil),
	}, nil
}

// Search runs a server-side search. A blank query returns no results without a gateway call.
func (s *CatalogService) Search(ctx context.Context, query string) (*SearchView, error) {
	query = strings.TrimSpace(query)
	view := &SearchView{Query: query, Results: []ItemCard{}}
	if query == "" {
		return view, nil
	}

	items, err := s.gateway.SearchItems(ctx, query)
	if err != nil {
		return nil, err
	}
	for i := range items {
		view.Results = append(view.Results, itemCard(&items[i], items[i].CategorySlug))
	}
	view.Total = len(view.Results)
	return view, nil
}

// CategoryPage resolves a category and applies the filter and sort from q.
func (s *CatalogService) CategoryPage(ctx context.Context, categorySlug string, q CategoryPageQuery) (*CategoryPageView, error) {
	filter, sortKey, echo, err := parseCategoryQuery(q)
	if err != nil {
		return nil, err
	}

	page, err := s.resolver.ResolveCategoryPage(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	shown := catalog.Apply(page.Items, filter, sortKey)
	key := page.Category.PathKey()

	view := &CategoryPageView{
		Category:    categoryCard(&page.Category),
		Items:       make([]ItemCard, 0, len(shown)),
		Shown:       len(shown),
		Total:       len(page.Items),
		Filter:      echo,
		Breadcrumbs: catalog.BuildTrail(catalog.Segments("/"+categorySlug), map[string]string{categorySlug: page.Category.Name}),
	}
	for i := range shown {
		view.Items = append(view.Items, itemCard(&shown[i], key))
	}

	switch {
	case len(page.Items) == 0:
		view.Empty = "No items yet"
	case len(shown) == 0:
		view.Empty = "No items match your filter"
	}
	return view, nil
}

// ItemPage resolves an item and its related items.
func (s *CatalogService) ItemPage(ctx context.Context, categorySlug, itemSlug string) (*ItemPageView, error) {
	res, err := s.resolver.ResolveItem(ctx, categorySlug, itemSlug)
	if err != nil {
		return nil, err
	}

	key := res.Category.PathKey()
	related := catalog.Related(res.Items, res.Item.ID, s.opts.RelatedLimit)

	view := &ItemPageView{
		Category: categoryCard(&res.Category),
		Item:     itemDetail(&res.Item),
		Related:  make([]ItemCard, 0, len(related)),
		Breadcrumbs: catalog.BuildTrail(
			[]string{categorySlug, itemSlug},
			map[string]string{categorySlug: res.Category.Name, itemSlug: res.Item.Title},
		),
	}
	for i := range related {
		view.Related = append(view.Related, itemCard(&related[i], key))
	}
	return view, nil
}

// Breadcrumbs resolves the trail for an arbitrary path.
func (s *CatalogService) Breadcrumbs(ctx context.Context, path string) []catalog.Crumb {
	return s.resolver.Breadcrumbs(ctx, path)
}

// NotFound builds the not-found view for err. When only the item was missing the category
// page is offered as well.
func (s *CatalogService) NotFound(err error, categorySlug string) NotFoundView {
	view := NotFoundView{
		Message: "The page you're looking for doesn't exist.",
		Links:   []Link{{Label: "Explore categories", Href: "/explore"}},
	}

	switch domainerrors.CodeOf(err) {
	case domainerrors.CodeCategoryNotFound:
		view.Message = "Category not found"
	case domainerrors.CodeItemNotFound:
		view.Message = "Item not found"
		if categorySlug != "" {
			view.Links = append(view.Links, Link{Label: "Back to category", Href: "/" + categorySlug})
		}
	}
	return view
}

func parseCategoryQuery(q CategoryPageQuery) (catalog.Filter, catalog.SortKey, FilterEcho, error) {
	filter := catalog.Filter{
		SearchTerm: strings.TrimSpace(q.Search),
		CategoryID: strings.TrimSpace(q.Category),
	}
	echo := FilterEcho{Search: filter.SearchTerm, Category: filter.CategoryID}

	if r := strings.TrimSpace(q.Rating); r != "" {
		v, err := strconv.Atoi(r)
		if err != nil || v < catalog.MinRatingFilter || v > catalog.MaxRatingFilter {
			return filter, "", echo, domainerrors.ValidationWithDetails(
				"rating must be a whole number from 1 to 5",
				map[string]string{"rating": "must be one of: 1 2 3 4 5"},
			)
		}
		filter.Rating = catalog.RatingFilter{Enabled: true, Value: v}
		echo.Rating = &v
	}

	key, err := catalog.ParseSortKey(q.Sort)
	if err != nil {
		return filter, "", echo, domainerrors.ValidationWithDetails(
			err.Error(),
			map[string]string{"sort": "must be one of: newest oldest title rating"},
		)
	}
	echo.Sort = key

	return filter, key, echo, nil
}

func categorySlugs(categories []domain.Category) map[string]string {
	out := make(map[string]string, len(categories))
	for i := range categories {
		if _, seen := out[categories[i].ID]; !seen {
			out[categories[i].ID] = categories[i].PathKey()
		}
	}
	return out
}

func categoryCards(categories []domain.Category) []CategoryCard {
	out := make([]CategoryCard, 0, len(categories))
	for i := range categories {
		out = append(out, categoryCard(&categories[i]))
	}
	return out
}

func categoryCard(c *domain.Category) CategoryCard {
	glyph := icon.Resolve(c.DisplayIcon())
	return CategoryCard{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Href:        "/" + c.PathKey(),
		Description: c.Description,
		Gradient:    c.DisplayGradient(),
		Icon:        glyph,
		IconMarkup:  glyph.Markup(),
		ItemCount:   c.ItemCount,
	}
}

// itemCard builds a grid card. categoryKey is the owning category's path key; when it is
// unknown the card carries no href.
func itemCard(it *domain.Item, categoryKey string) ItemCard {
	card := ItemCard{
		ID:           it.ID,
		Title:        it.Title,
		Slug:         it.Slug,
		Description:  it.Description,
		Cover:        it.Cover(),
		CategoryName: it.CategoryName,
		Featured:     it.Featured,
	}
	if categoryKey == "" {
		categoryKey = it.CategorySlug
	}
	if categoryKey != "" && it.Slug != "" {
		card.Href = "/" + categoryKey + "/" + it.Slug
	}
	card.Rating, card.Stars = displayRating(catalog.ItemRating(it))
	return card
}

func itemDetail(it *domain.Item) ItemDetail {
	d := ItemDetail{Item: *it, Cover: it.Cover()}
	d.DisplayRating, d.Stars = displayRating(catalog.ItemRating(it))

	if it.Ratings != nil {
		d.Breakdown = []RatingBar{
			ratingBar("story", "Story", it.Ratings.Story),
			ratingBar("graphics", "Graphics", it.Ratings.Graphics),
			ratingBar("gameplay", "Gameplay", it.Ratings.Gameplay),
			ratingBar("replayability", "Replayability", it.Ratings.Replayability),
		}
	}
	return d
}

func displayRating(r catalog.Rating) (*float64, *int) {
	stars, ok := r.Rounded()
	if !ok {
		return nil, nil
	}
	v := math.Round(r.Value*10) / 10
	return &v, &stars
}

func ratingBar(key, label string, v *float64) RatingBar {
	value := 0.0
	if v != nil {
		value = *v
	}
	return RatingBar{
		Key:     key,
		Label:   label,
		Value:   value,
		Percent: math.Max(0, math.Min(100, value/5*100)),
	}
}
