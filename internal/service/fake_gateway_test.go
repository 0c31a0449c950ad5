package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/echoverse/echo-web/internal/catalog"
	"github.com/echoverse/echo-web/internal/domain"
	"github.com/echoverse/echo-web/internal/gateway"
)

// fakeGateway is an in-memory gateway recording every call.
type fakeGateway struct {
	mu sync.Mutex

	categories []domain.Category
	items      []domain.Item
	err        map[string]error
	calls      []string

	createdCategory domain.CategoryInput
	createdItem     domain.ItemInput
	statusChange    domain.ItemStatus
	bulkDeleted     []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		categories: []domain.Category{
			{ID: "c1", Name: "Movies", Slug: "movies", Status: domain.CategoryActive, Icon: "film", ItemCount: 3},
			{ID: "c2", Name: "Games", Slug: "games", Status: domain.CategoryActive, Icon: "🎮"},
			{ID: "c3", Name: "Legacy", Slug: "legacy", Status: domain.CategoryActive, Icon: "unknown-icon"},
		},
		items: []domain.Item{
			{ID: "i1", Title: "The Matrix", Slug: "matrix", CategoryID: "c1", Rating: domain.Float(4.6), Featured: true, Screenshots: []string{"m.png"}},
			{ID: "i2", Title: "Alien", Slug: "alien", CategoryID: "c1", Rating: domain.Float(4.4)},
			{ID: "i3", Title: "Blade Runner", Slug: "blade-runner", CategoryID: "c1",
				Ratings: &domain.Ratings{Story: domain.Float(5), Graphics: domain.Float(4)}},
			{ID: "i4", Title: "Halo", Slug: "halo", CategoryID: "c2", Featured: true},
		},
		err: map[string]error{},
	}
}

func (f *fakeGateway) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err[call]
}

func (f *fakeGateway) itemsIn(categoryID string) []domain.Item {
	var out []domain.Item
	for _, it := range f.items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out
}

func (f *fakeGateway) Categories(_ context.Context) ([]domain.Category, error) {
	if err := f.record("categories"); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeGateway) ItemsByCategory(_ context.Context, categoryID string) ([]domain.Item, error) {
	if err := f.record("itemsByCategory"); err != nil {
		return nil, err
	}
	return f.itemsIn(categoryID), nil
}

func (f *fakeGateway) FeaturedItems(_ context.Context, limit int) ([]domain.Item, error) {
	if err := f.record("featured"); err != nil {
		return nil, err
	}
	var out []domain.Item
	for _, it := range f.items {
		if it.Featured && len(out) < limit {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeGateway) SearchItems(_ context.Context, term string) ([]domain.Item, error) {
	if err := f.record("search"); err != nil {
		return nil, err
	}
	return catalog.Apply(f.items, catalog.Filter{SearchTerm: term}, catalog.SortNone), nil
}

func (f *fakeGateway) ListCategories(_ context.Context) ([]domain.Category, error) {
	if err := f.record("listCategories"); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeGateway) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	if err := f.record("getCategory"); err != nil {
		return nil, err
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return &domain.Category{}, nil
}

func (f *fakeGateway) CreateCategory(_ context.Context, in domain.CategoryInput) (*domain.Category, error) {
	if err := f.record("createCategory"); err != nil {
		return nil, err
	}
	f.createdCategory = in
	c := domain.Category{ID: "new-c", Name: in.Name, Slug: in.Slug, Status: in.Status}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeGateway) UpdateCategory(_ context.Context, id string, in domain.CategoryInput) (*domain.Category, error) {
	if err := f.record("updateCategory"); err != nil {
		return nil, err
	}
	return &domain.Category{ID: id, Name: in.Name, Slug: in.Slug}, nil
}

func (f *fakeGateway) DeleteCategory(_ context.Context, id string) error {
	if err := f.record("deleteCategory"); err != nil {
		return err
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeGateway) ListItems(_ context.Context, _ gateway.ItemQuery) ([]domain.Item, error) {
	if err := f.record("listItems"); err != nil {
		return nil, err
	}
	return f.items, nil
}

func (f *fakeGateway) Item(_ context.Context, id string) (*domain.Item, error) {
	if err := f.record("item"); err != nil {
		return nil, err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return &domain.Item{}, nil
}

func (f *fakeGateway) CreateItem(_ context.Context, in domain.ItemInput) (*domain.Item, error) {
	if err := f.record("createItem"); err != nil {
		return nil, err
	}
	f.createdItem = in
	it := domain.Item{ID: "new-i", Title: in.Title, Slug: in.Slug, CategoryID: in.Category, Status: in.Status}
	f.items = append(f.items, it)
	return &it, nil
}

func (f *fakeGateway) UpdateItem(_ context.Context, id string, in domain.ItemInput) (*domain.Item, error) {
	if err := f.record("updateItem"); err != nil {
		return nil, err
	}
	f.createdItem = in
	return &domain.Item{ID: id, Title: in.Title}, nil
}

func (f *fakeGateway) DeleteItem(_ context.Context, _ string) error {
	return f.record("deleteItem")
}

func (f *fakeGateway) BulkDeleteItems(_ context.Context, ids []string) error {
	if err := f.record("bulkDelete"); err != nil {
		return err
	}
	f.bulkDeleted = ids
	return nil
}

func (f *fakeGateway) UpdateItemStatus(_ context.Context, _ string, status domain.ItemStatus) error {
	if err := f.record("itemStatus"); err != nil {
		return err
	}
	f.statusChange = status
	return nil
}

func (f *fakeGateway) UploadImage(_ context.Context, filename string, r io.Reader) (string, error) {
	if err := f.record("upload"); err != nil {
		return "", err
	}
	_, _ = io.Copy(io.Discard, r)
	return "https://cdn.test/" + filename, nil
}

func (f *fakeGateway) CategoryStats(_ context.Context) ([]domain.CategoryStat, error) {
	if err := f.record("categoryStats"); err != nil {
		return nil, err
	}
	out := make([]domain.CategoryStat, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, domain.CategoryStat{ID: c.ID, Name: c.Name, Status: c.Status, ItemCount: len(f.itemsIn(c.ID))})
	}
	return out, nil
}

func (f *fakeGateway) ItemStats(_ context.Context) (domain.ItemOverview, error) {
	if err := f.record("itemStats"); err != nil {
		return domain.ItemOverview{}, err
	}
	return domain.ItemOverview{Total: len(f.items)}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCatalogService(gw *fakeGateway) *CatalogService {
	return NewCatalogService(gw, catalog.NewResolver(gw, testLogger()), CatalogOptions{FeaturedLimit: 10, RelatedLimit: 8}, testLogger())
}
