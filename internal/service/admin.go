package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/echoverse/echo-web/internal/catalog"
	"github.com/echoverse/echo-web/internal/domain"
	domainerrors "github.com/echoverse/echo-web/internal/errors"
	"github.com/echoverse/echo-web/internal/gateway"
	"github.com/echoverse/echo-web/internal/slug"
	"github.com/echoverse/echo-web/internal/validation"
)

// AdminGateway is the write side of the gateway used by the admin console.
type AdminGateway interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in domain.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CategoryStats(ctx context.Context) ([]domain.CategoryStat, error)

	ListItems(ctx context.Context, q gateway.ItemQuery) ([]domain.Item, error)
	Item(ctx context.Context, id string) (*domain.Item, error)
	CreateItem(ctx context.Context, in domain.ItemInput) (*domain.Item, error)
	UpdateItem(ctx context.Context, id string, in domain.ItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	BulkDeleteItems(ctx context.Context, ids []string) error
	UpdateItemStatus(ctx context.Context, id string, status domain.ItemStatus) error
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
	ItemStats(ctx context.Context) (domain.ItemOverview, error)
}

// AdminService runs the admin mutation flow: normalize, validate the required fields,
// call the gateway, then re-fetch the affected list.
type AdminService struct {
	gateway   AdminGateway
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(gw AdminGateway, logger *slog.Logger) *AdminService {
	return &AdminService{
		gateway:   gw,
		validator: validation.New(),
		logger:    logger,
	}
}

// CategoryForm is the admin category form as submitted.
type CategoryForm struct {
	Name        string `json:"name,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Gradient    string `json:"gradient,omitempty"`
	Status      string `json:"status,omitempty"`
}

// RatingsForm holds sub-scores as entered. Zero means not given.
type RatingsForm struct {
	Story         float64 `json:"story,omitempty"`
	Graphics      float64 `json:"graphics,omitempty"`
	Gameplay      float64 `json:"gameplay,omitempty"`
	Replayability float64 `json:"replayability,omitempty"`
}

// CharacterForm is one character row of the item form.
type CharacterForm struct {
	Name        string `json:"name,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// ItemForm is the admin item form as submitted.
type ItemForm struct {
	Title           string          `json:"title,omitempty"`
	Description     string          `json:"description,omitempty"`
	Slug            string          `json:"slug,omitempty"`
	Category        string          `json:"category,omitempty"`
	Status          string          `json:"status,omitempty"`
	Featured        bool            `json:"featured,omitempty"`
	ReleaseDate     string          `json:"releaseDate,omitempty"`
	Developer       string          `json:"developer,omitempty"`
	Platforms       []string        `json:"platforms,omitempty"`
	Genres          []string        `json:"genres,omitempty"`
	KeyFeatures     []string        `json:"keyFeatures,omitempty"`
	StorySummary    string          `json:"storySummary,omitempty"`
	Highlights      []string        `json:"highlights,omitempty"`
	AuthorReview    string          `json:"authorReview,omitempty"`
	Screenshots     []string        `json:"screenshots,omitempty"`
	SoundtrackLinks []string        `json:"soundtrackLinks,omitempty"`
	Ratings         *RatingsForm    `json:"ratings,omitempty"`
	Characters      []CharacterForm `json:"characters,omitempty"`
}

// ItemListQuery filters the admin item list on the client side.
type ItemListQuery struct {
	Search   string
	Category string
	Sort     string
}

// CategoryMutation is the outcome of a category write: the stored record, when the gateway
// returns one, and the refreshed list.
type CategoryMutation struct {
	Category   *domain.Category  `json:"category,omitempty"`
	Categories []domain.Category `json:"categories"`
}

// ItemMutation is the outcome of an item write: the stored record, when the gateway returns
// one, and the refreshed list.
type ItemMutation struct {
	Item  *domain.Item  `json:"item,omitempty"`
	Items []domain.Item `json:"items"`
}

// NormalizeCategory trims the form, derives a missing slug from the name and defaults the
// status to active.
func NormalizeCategory(f CategoryForm) domain.CategoryInput {
	in := domain.CategoryInput{
		Name:        strings.TrimSpace(f.Name),
		Slug:        strings.TrimSpace(f.Slug),
		Description: strings.TrimSpace(f.Description),
		Icon:        strings.TrimSpace(f.Icon),
		Gradient:    strings.TrimSpace(f.Gradient),
		Status:      domain.CategoryStatus(strings.TrimSpace(f.Status)),
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	if in.Status == "" {
		in.Status = domain.CategoryActive
	}
	return in
}

// NormalizeItem drops blank list entries, keeps only positive sub-scores, derives a missing
// slug from the title and defaults the status to draft.
func NormalizeItem(f ItemForm) domain.ItemInput {
	in := domain.ItemInput{
		Title:           strings.TrimSpace(f.Title),
		Description:     strings.TrimSpace(f.Description),
		Slug:            strings.TrimSpace(f.Slug),
		Category:        strings.TrimSpace(f.Category),
		Status:          domain.ItemStatus(strings.TrimSpace(f.Status)),
		Featured:        f.Featured,
		ReleaseDate:     strings.TrimSpace(f.ReleaseDate),
		Developer:       strings.TrimSpace(f.Developer),
		Platforms:       compact(f.Platforms),
		Genres:          compact(f.Genres),
		KeyFeatures:     compact(f.KeyFeatures),
		StorySummary:    f.StorySummary,
		Highlights:      compact(f.Highlights),
		AuthorReview:    f.AuthorReview,
		Screenshots:     compact(f.Screenshots),
		SoundtrackLinks: compact(f.SoundtrackLinks),
		Ratings:         normalizeRatings(f.Ratings),
		Characters:      make([]domain.Character, 0, len(f.Characters)),
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Title)
	}
	if in.Status == "" {
		in.Status = domain.ItemDraft
	}
	for _, c := range f.Characters {
		in.Characters = append(in.Characters, domain.Character{
			Name:        strings.TrimSpace(c.Name),
			Image:       strings.TrimSpace(c.Image),
			Description: c.Description,
		})
	}
	return in
}

// compact returns the non-blank entries, trimmed. The result is never nil.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeRatings(f *RatingsForm) *domain.Ratings {
	if f == nil {
		return nil
	}
	positive := func(v float64) *float64 {
		if v > 0 {
			return domain.Float(v)
		}
		return nil
	}
	r := &domain.Ratings{
		Story:         positive(f.Story),
		Graphics:      positive(f.Graphics),
		Gameplay:      positive(f.Gameplay),
		Replayability: positive(f.Replayability),
	}
	if !r.Any() {
		return nil
	}
	return r
}

// ListCategories returns every category regardless of status.
func (s *AdminService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.gateway.ListCategories(ctx)
}

// GetCategory returns one category.
func (s *AdminService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.gateway.GetCategory(ctx, id)
}

// CreateCategory validates and creates a category, then refreshes the list.
func (s *AdminService) CreateCategory(ctx context.Context, f CategoryForm) (*CategoryMutation, error) {
	in := NormalizeCategory(f)
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	created, err := s.gateway.CreateCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("category created", "id", created.ID, "slug", in.Slug)

	return s.refreshCategories(ctx, created)
}

// UpdateCategory validates and replaces a category, then refreshes the list.
func (s *AdminService) UpdateCategory(ctx context.Context, id string, f CategoryForm) (*CategoryMutation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domainerrors.Validation("category id is required")
	}
	in := NormalizeCategory(f)
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	updated, err := s.gateway.UpdateCategory(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("category updated", "id", id)

	return s.refreshCategories(ctx, updated)
}

// DeleteCategory deletes a category, then refreshes the list.
func (s *AdminService) DeleteCategory(ctx context.Context, id string) (*CategoryMutation, error) {
	if err := s.gateway.DeleteCategory(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("category deleted", "id", id)

	return s.refreshCategories(ctx, nil)
}

// CategoryStats returns per-category statistics.
func (s *AdminService) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	return s.gateway.CategoryStats(ctx)
}

func (s *AdminService) refreshCategories(ctx context.Context, changed *domain.Category) (*CategoryMutation, error) {
	categories, err := s.gateway.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if changed != nil && changed.ID == "" {
		changed = nil
	}
	return &CategoryMutation{Category: changed, Categories: categories}, nil
}

// ListItems returns every item, narrowed and ordered on the client side by q.
// Without a sort key the newest items come first.
func (s *AdminService) ListItems(ctx context.Context, q ItemListQuery) ([]domain.Item, error) {
	key, err := catalog.ParseSortKey(q.Sort)
	if err != nil {
		return nil, domainerrors.ValidationWithDetails(err.Error(),
			map[string]string{"sort": "must be one of: newest oldest title rating"})
	}
	if key == catalog.SortNone {
		key = catalog.SortNewest
	}

	items, err := s.gateway.ListItems(ctx, gateway.ItemQuery{})
	if err != nil {
		return nil, err
	}

	return catalog.Apply(items, catalog.Filter{
		SearchTerm: strings.TrimSpace(q.Search),
		CategoryID: strings.TrimSpace(q.Category),
	}, key), nil
}

// GetItem returns one item.
func (s *AdminService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.gateway.Item(ctx, id)
}

// CreateItem validates and creates an item, then refreshes the list.
func (s *AdminService) CreateItem(ctx context.Context, f ItemForm) (*ItemMutation, error) {
	in := NormalizeItem(f)
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	created, err := s.gateway.CreateItem(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("item created", "id", created.ID, "slug", in.Slug, "category", in.Category)

	return s.refreshItems(ctx, created)
}

// UpdateItem validates and replaces an item, then refreshes the list.
func (s *AdminService) UpdateItem(ctx context.Context, id string, f ItemForm) (*ItemMutation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domainerrors.Validation("item id is required")
	}
	in := NormalizeItem(f)
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	updated, err := s.gateway.UpdateItem(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("item updated", "id", id)

	return s.refreshItems(ctx, updated)
}

// DeleteItem deletes an item, then refreshes the list.
func (s *AdminService) DeleteItem(ctx context.Context, id string) (*ItemMutation, error) {
	if err := s.gateway.DeleteItem(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("item deleted", "id", id)

	return s.refreshItems(ctx, nil)
}

// BulkDeleteItems deletes several items in one gateway call, then refreshes the list.
func (s *AdminService) BulkDeleteItems(ctx context.Context, ids []string) (*ItemMutation, error) {
	ids = compact(ids)
	if len(ids) == 0 {
		return nil, domainerrors.ValidationWithDetails("at least one item id is required",
			map[string]string{"ids": "is required"})
	}

	if err := s.gateway.BulkDeleteItems(ctx, ids); err != nil {
		return nil, err
	}
	s.logger.Info("items deleted", "count", len(ids))

	return s.refreshItems(ctx, nil)
}

// UpdateItemStatus changes an item's status, then refreshes the list.
func (s *AdminService) UpdateItemStatus(ctx context.Context, id string, status string) (*ItemMutation, error) {
	st := domain.ItemStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return nil, domainerrors.ValidationWithDetails("invalid status",
			map[string]string{"status": "must be one of: draft active inactive"})
	}

	if err := s.gateway.UpdateItemStatus(ctx, id, st); err != nil {
		return nil, err
	}
	s.logger.Info("item status changed", "id", id, "status", st)

	return s.refreshItems(ctx, nil)
}

// UploadImage forwards an image to the gateway and returns its URL.
func (s *AdminService) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if strings.TrimSpace(filename) == "" {
		filename = "upload"
	}
	return s.gateway.UploadImage(ctx, filename, r)
}

// ItemStats returns aggregate item statistics.
func (s *AdminService) ItemStats(ctx context.Context) (domain.ItemOverview, error) {
	return s.gateway.ItemStats(ctx)
}

func (s *AdminService) refreshItems(ctx context.Context, changed *domain.Item) (*ItemMutation, error) {
	items, err := s.gateway.ListItems(ctx, gateway.ItemQuery{})
	if err != nil {
		return nil, err
	}
	if changed != nil && changed.ID == "" {
		changed = nil
	}
	return &ItemMutation{Item: changed, Items: items}, nil
}
