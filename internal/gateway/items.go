package gateway

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/echoverse/echo-web/internal/domain"
)

// DefaultFeaturedLimit is the number of featured items requested for the home page.
const DefaultFeaturedLimit = 10

// ItemQuery filters a gateway item listing. Zero fields are not sent.
type ItemQuery struct {
	Category string
	Status   domain.ItemStatus
	Search   string
	Featured bool
	Limit    int
}

func (q ItemQuery) values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ItemsByCategory returns the active items of one category.
func (c *Client) ItemsByCategory(ctx context.Context, categoryID string) ([]domain.Item, error) {
	return c.listItems(ctx, "itemsByCategory", ItemQuery{Category: categoryID, Status: domain.ItemActive}, "Failed to fetch items")
}

// FeaturedItems returns up to limit active featured items.
func (c *Client) FeaturedItems(ctx context.Context, limit int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return c.listItems(ctx, "featuredItems", ItemQuery{Featured: true, Status: domain.ItemActive, Limit: limit}, "Failed to fetch featured items")
}

// SearchItems runs the gateway's server-side search over active items.
func (c *Client) SearchItems(ctx context.Context, term string) ([]domain.Item, error) {
	return c.listItems(ctx, "searchItems", ItemQuery{Search: term, Status: domain.ItemActive}, "Failed to search items")
}

// ListItems returns items matching q. An empty query lists every item regardless of status.
func (c *Client) ListItems(ctx context.Context, q ItemQuery) ([]domain.Item, error) {
	return c.listItems(ctx, "listItems", q, "Failed to fetch items")
}

func (c *Client) listItems(ctx context.Context, op string, q ItemQuery, fallback string) ([]domain.Item, error) {
	env, err := c.do(ctx, call{
		op:       op,
		method:   http.MethodGet,
		segments: []string{"items"},
		query:    q.values(),
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}

	items := []domain.Item{}
	if err := decodeField(env.Data, "items", &items); err != nil {
		return nil, decodeFailure(op, "/items", fallback, err)
	}
	return items, nil
}

// Item fetches a single item by ID.
func (c *Client) Item(ctx context.Context, id string) (*domain.Item, error) {
	const fallback = "Failed to fetch item"

	env, err := c.do(ctx, call{
		op:       "item",
		method:   http.MethodGet,
		segments: []string{"items", id},
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}

	var item domain.Item
	if err := decodeOne(env.Data, "item", &item); err != nil {
		return nil, decodeFailure("item", "/items/"+id, fallback, err)
	}
	return &item, nil
}

// CreateItem creates an item and returns the stored record.
func (c *Client) CreateItem(ctx context.Context, in domain.ItemInput) (*domain.Item, error) {
	return c.saveItem(ctx, "createItem", http.MethodPost, []string{"items"}, in, "Failed to create item")
}

// UpdateItem replaces an item and returns the stored record.
func (c *Client) UpdateItem(ctx context.Context, id string, in domain.ItemInput) (*domain.Item, error) {
	return c.saveItem(ctx, "updateItem", http.MethodPut, []string{"items", id}, in, "Failed to update item")
}

func (c *Client) saveItem(ctx context.Context, op, method string, segments []string, in domain.ItemInput, fallback string) (*domain.Item, error) {
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

	var item domain.Item
	if err := decodeOne(env.Data, "item", &item); err != nil {
		return nil, decodeFailure(op, "/items", fallback, err)
	}
	return &item, nil
}

// DeleteItem removes one item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		op:       "deleteItem",
		method:   http.MethodDelete,
		segments: []string{"items", id},
		fallback: "Failed to delete item",
	})
	return err
}

// BulkDeleteItems removes several items in one request.
func (c *Client) BulkDeleteItems(ctx context.Context, ids []string) error {
	_, err := c.do(ctx, call{
		op:       "bulkDeleteItems",
		method:   http.MethodDelete,
		segments: []string{"items"},
		body:     map[string][]string{"ids": ids},
		fallback: "Failed to delete items",
	})
	return err
}

// UpdateItemStatus changes the lifecycle status of an item.
func (c *Client) UpdateItemStatus(ctx context.Context, id string, status domain.ItemStatus) error {
	_, err := c.do(ctx, call{
		op:       "updateItemStatus",
		method:   http.MethodPatch,
		segments: []string{"items", id, "status"},
		body:     map[string]domain.ItemStatus{"status": status},
		fallback: "Failed to update item status",
	})
	return err
}

// ItemStats returns the aggregate item counts.
func (c *Client) ItemStats(ctx context.Context) (domain.ItemOverview, error) {
	const fallback = "Failed to fetch item stats"

	env, err := c.do(ctx, call{
		op:       "itemStats",
		method:   http.MethodGet,
		segments: []string{"items", "stats"},
		fallback: fallback,
	})
	if err != nil {
		return domain.ItemOverview{}, err
	}

	var overview domain.ItemOverview
	if err := decodeField(env.Data, "overview", &overview); err != nil {
		return domain.ItemOverview{}, decodeFailure("itemStats", "/items/stats", fallback, err)
	}
	return overview, nil
}

// UploadImage sends an image as multipart field "image" and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	const fallback = "Failed to upload image"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", decodeFailure("uploadImage", "/items/upload-image", fallback, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", decodeFailure("uploadImage", "/items/upload-image", fallback, err)
	}
	if err := mw.Close(); err != nil {
		return "", decodeFailure("uploadImage", "/items/upload-image", fallback, err)
	}

	env, err := c.do(ctx, call{
		op:          "uploadImage",
		method:      http.MethodPost,
		segments:    []string{"items", "upload-image"},
		rawBody:     &buf,
		contentType: mw.FormDataContentType(),
		fallback:    fallback,
	})
	if err != nil {
		return "", err
	}

	var imageURL string
	if err := decodeField(env.Data, "url", &imageURL); err != nil {
		return "", decodeFailure("uploadImage", "/items/upload-image", fallback, err)
	}
	if imageURL == "" {
		imageURL = env.URL
	}
	return imageURL, nil
}
