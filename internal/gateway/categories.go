package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/echoverse/echo-web/internal/domain"
)

// Categories returns the active categories shown on public pages.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	return c.listCategories(ctx, "categories", url.Values{"status": {string(domain.CategoryActive)}})
}

// ListCategories returns every category regardless of status.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return c.listCategories(ctx, "listCategories", nil)
}

func (c *Client) listCategories(ctx context.Context, op string, query url.Values) ([]domain.Category, error) {
	const fallback = "Failed to fetch categories"

	env, err := c.do(ctx, call{
		op:       op,
		method:   http.MethodGet,
		segments: []string{"categories"},
		query:    query,
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}

	categories := []domain.Category{}
	if err := decodeField(env.Data, "categories", &categories); err != nil {
		return nil, decodeFailure(op, "/categories", fallback, err)
	}
	return categories, nil
}

// GetCategory fetches a single category by ID.
func (c *Client) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	const fallback = "Failed to fetch category"

	env, err := c.do(ctx, call{
		op:       "getCategory",
		method:   http.MethodGet,
		segments: []string{"categories", id},
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}

	var category domain.Category
	if err := decodeOne(env.Data, "category", &category); err != nil {
		return nil, decodeFailure("getCategory", "/categories/"+id, fallback, err)
	}
	return &category, nil
}

// CreateCategory creates a category and returns the stored record.
func (c *Client) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	return c.saveCategory(ctx, "createCategory", http.MethodPost, []string{"categories"}, in, "Failed to create category")
}

// UpdateCategory replaces a category and returns the stored record.
func (c *Client) UpdateCategory(ctx context.Context, id string, in domain.CategoryInput) (*domain.Category, error) {
	return c.saveCategory(ctx, "updateCategory", http.MethodPut, []string{"categories", id}, in, "Failed to update category")
}

func (c *Client) saveCategory(ctx context.Context, op, method string, segments []string, in domain.CategoryInput, fallback string) (*domain.Category, error) {
	env, err := c.do(ctx, call{
		op:       op,
		method:   method,
		segments: segments,
		body:     in,
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}

	var category domain.Category
	if err := decodeOne(env.Data, "category", &category); err != nil {
		return nil, decodeFailure(op, "/categories", fallback, err)
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		op:       "deleteCategory",
		method:   http.MethodDelete,
		segments: []string{"categories", id},
		fallback: "Failed to delete category",
	})
	return err
}

// CategoryStats returns per-category statistics.
func (c *Client) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	const fallback = "Failed to fetch category stats"

	env, err := c.do(ctx, call{
		op:       "categoryStats",
		method:   http.MethodGet,
		segments: []string{"categories", "stats"},
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}

	stats := []domain.CategoryStat{}
	if err := decodeField(env.Data, "stats", &stats); err != nil {
		return nil, decodeFailure("categoryStats", "/categories/stats", fallback, err)
	}
	return stats, nil
}
