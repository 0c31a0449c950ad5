package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/echoverse/echo-web/internal/catalog"
	"github.com/echoverse/echo-web/internal/dashboard"
	"github.com/echoverse/echo-web/internal/domain"
	"github.com/echoverse/echo-web/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        "/admin",
		Summary:     "Get dashboard",
		Description: "Returns the latest category and item counts; refresh=true fetches them now",
		Tags:        []string{"Admin"},
	}, s.handleGetDashboard)

	huma.Register(s.api, huma.Operation{
		OperationID: "resolveBreadcrumbs",
		Method:      http.MethodGet,
		Path:        "/admin/api/breadcrumbs",
		Summary:     "Resolve breadcrumbs",
		Description: "Resolves display labels for every segment of a path",
		Tags:        []string{"Admin"},
	}, s.handleResolveBreadcrumbs)

	s.registerAdminCategoryRoutes()
	s.registerAdminItemRoutes()
}

// === DTOs ===

type GetDashboardInput struct {
	Refresh bool `query:"refresh" doc:"Fetch fresh stats before answering"`
}

type DashboardResponse struct {
	Stats       dashboard.Snapshot `json:"stats" doc:"Latest statistics"`
	Breadcrumbs []catalog.Crumb    `json:"breadcrumbs" doc:"Breadcrumb trail"`
}

type DashboardOutput struct {
	Body DashboardResponse
}

type ResolveBreadcrumbsInput struct {
	Path string `query:"path" doc:"URL path to resolve, e.g. /movies/the-matrix"`
}

type BreadcrumbsResponse struct {
	Breadcrumbs []catalog.Crumb `json:"breadcrumbs" doc:"Breadcrumb trail"`
}

type BreadcrumbsOutput struct {
	Body BreadcrumbsResponse
}

func (s *Server) handleGetDashboard(ctx context.Context, input *GetDashboardInput) (*DashboardOutput, error) {
	var snap dashboard.Snapshot
	if s.services.Dashboard != nil {
		if input.Refresh {
			// A failed refresh keeps the previous counts and is reported in the snapshot.
			snap, _ = s.services.Dashboard.Refresh(ctx)
		} else {
			snap = s.services.Dashboard.Snapshot()
		}
	}

	return &DashboardOutput{
		Body: DashboardResponse{
			Stats:       snap,
			Breadcrumbs: catalog.BuildTrail([]string{"admin"}, nil),
		},
	}, nil
}

func (s *Server) handleResolveBreadcrumbs(ctx context.Context, input *ResolveBreadcrumbsInput) (*BreadcrumbsOutput, error) {
	return &BreadcrumbsOutput{
		Body: BreadcrumbsResponse{Breadcrumbs: s.services.Catalog.Breadcrumbs(ctx, input.Path)},
	}, nil
}

// === Categories ===

func (s *Server) registerAdminCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminListCategories",
		Method:      http.MethodGet,
		Path:        "/admin/categories",
		Summary:     "List categories",
		Description: "Returns every category regardless of status",
		Tags:        []string{"Admin", "Categories"},
	}, s.handleAdminListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateCategory",
		Method:        http.MethodPost,
		Path:          "/admin/categories",
		Summary:       "Create category",
		Description:   "Creates a category and returns the refreshed list",
		Tags:          []string{"Admin", "Categories"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminCreateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminCategoryStats",
		Method:      http.MethodGet,
		Path:        "/admin/categories/stats",
		Summary:     "Category statistics",
		Description: "Returns per-category statistics from the gateway",
		Tags:        []string{"Admin", "Categories"},
	}, s.handleAdminCategoryStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminGetCategory",
		Method:      http.MethodGet,
		Path:        "/admin/categories/{id}",
		Summary:     "Get category",
		Description: "Returns a category by ID",
		Tags:        []string{"Admin", "Categories"},
	}, s.handleAdminGetCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateCategory",
		Method:      http.MethodPut,
		Path:        "/admin/categories/{id}",
		Summary:     "Update category",
		Description: "Replaces a category and returns the refreshed list",
		Tags:        []string{"Admin", "Categories"},
	}, s.handleAdminUpdateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteCategory",
		Method:      http.MethodDelete,
		Path:        "/admin/categories/{id}",
		Summary:     "Delete category",
		Description: "Deletes a category and returns the refreshed list",
		Tags:        []string{"Admin", "Categories"},
	}, s.handleAdminDeleteCategory)
}

type CategoryIDInput struct {
	ID string `path:"id" doc:"Category ID"`
}

type CategoryFormInput struct {
	Body service.CategoryForm
}

type UpdateCategoryInput struct {
	ID   string `path:"id" doc:"Category ID"`
	Body service.CategoryForm
}

type CategoryListResponse struct {
	Categories []domain.Category `json:"categories" doc:"Categories"`
	Total      int               `json:"total" doc:"Number of categories"`
}

type CategoryListOutput struct {
	Body CategoryListResponse
}

type CategoryOutput struct {
	Body *domain.Category
}

type CategoryMutationOutput struct {
	Body *service.CategoryMutation
}

type CategoryStatsResponse struct {
	Stats []domain.CategoryStat `json:"stats" doc:"Per-category statistics"`
}

type CategoryStatsOutput struct {
	Body CategoryStatsResponse
}

func (s *Server) handleAdminListCategories(ctx context.Context, _ *struct{}) (*CategoryListOutput, error) {
	categories, err := s.services.Admin.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryListOutput{Body: CategoryListResponse{Categories: categories, Total: len(categories)}}, nil
}

func (s *Server) handleAdminCreateCategory(ctx context.Context, input *CategoryFormInput) (*CategoryMutationOutput, error) {
	res, err := s.services.Admin.CreateCategory(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &CategoryMutationOutput{Body: res}, nil
}

func (s *Server) handleAdminCategoryStats(ctx context.Context, _ *struct{}) (*CategoryStatsOutput, error) {
	stats, err := s.services.Admin.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryStatsOutput{Body: CategoryStatsResponse{Stats: stats}}, nil
}

func (s *Server) handleAdminGetCategory(ctx context.Context, input *CategoryIDInput) (*CategoryOutput, error) {
	category, err := s.services.Admin.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryOutput{Body: category}, nil
}

func (s *Server) handleAdminUpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*CategoryMutationOutput, error) {
	res, err := s.services.Admin.UpdateCategory(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &CategoryMutationOutput{Body: res}, nil
}

func (s *Server) handleAdminDeleteCategory(ctx context.Context, input *CategoryIDInput) (*CategoryMutationOutput, error) {
	res, err := s.services.Admin.DeleteCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryMutationOutput{Body: res}, nil
}

// === Items ===

func (s *Server) registerAdminItemRoutes() {
	// Upload uses chi directly for multipart form handling.
	s.router.Post("/admin/items/upload-image", s.handleUploadImage)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListItems",
		Method:      http.MethodGet,
		Path:        "/admin/items",
		Summary:     "List items",
		Description: "Returns every item, filtered and sorted on the server",
		Tags:        []string{"Admin", "Items"},
	}, s.handleAdminListItems)

	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateItem",
		Method:        http.MethodPost,
		Path:          "/admin/items",
		Summary:       "Create item",
		Description:   "Creates an item and returns the refreshed list",
		Tags:          []string{"Admin", "Items"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminItemStats",
		Method:      http.MethodGet,
		Path:        "/admin/items/stats",
		Summary:     "Item statistics",
		Description: "Returns aggregate item statistics from the gateway",
		Tags:        []string{"Admin", "Items"},
	}, s.handleAdminItemStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminBulkDeleteItems",
		Method:      http.MethodPost,
		Path:        "/admin/items/bulk-delete",
		Summary:     "Bulk delete items",
		Description: "Deletes several items in one call and returns the refreshed list",
		Tags:        []string{"Admin", "Items"},
	}, s.handleAdminBulkDeleteItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminGetItem",
		Method:      http.MethodGet,
		Path:        "/admin/items/{id}",
		Summary:     "Get item",
		Description: "Returns an item by ID",
		Tags:        []string{"Admin", "Items"},
	}, s.handleAdminGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateItem",
		Method:      http.MethodPut,
		Path:        "/admin/items/{id}",
		Summary:     "Update item",
		Description: "Replaces an item and returns the refreshed list",
		Tags:        []string{"Admin", "Items"},
	}, s.handleAdminUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteItem",
		Method:      http.MethodDelete,
		Path:        "/admin/items/{id}",
		Summary:     "Delete item",
		Description: "Deletes an item and returns the refreshed list",
		Tags:        []string{"Admin", "Items"},
	}, s.handleAdminDeleteItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateItemStatus",
		Method:      http.MethodPatch,
		Path:        "/admin/items/{id}/status",
		Summary:     "Change item status",
		Description: "Sets an item to draft, active or inactive and returns the refreshed list",
		Tags:        []string{"Admin", "Items"},
	}, s.handleAdminUpdateItemStatus)
}

type ListItemsInput struct {
	Search   string `query:"search" doc:"Case-insensitive title or description match"`
	Category string `query:"category" doc:"Owning category ID"`
	Sort     string `query:"sort" doc:"Sort key: newest, oldest, title or rating; defaults to newest"`
}

type ItemIDInput struct {
	ID string `path:"id" doc:"Item ID"`
}

type ItemFormInput struct {
	Body service.ItemForm
}

type UpdateItemInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body service.ItemForm
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" doc:"Item IDs to delete"`
}

type BulkDeleteInput struct {
	Body BulkDeleteRequest
}

type ItemStatusRequest struct {
	Status string `json:"status" enum:"draft,active,inactive" doc:"New status"`
}

type UpdateItemStatusInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body ItemStatusRequest
}

type ItemListResponse struct {
	Items []domain.Item `json:"items" doc:"Items"`
	Total int           `json:"total" doc:"Number of items after filtering"`
}

type ItemListOutput struct {
	Body ItemListResponse
}

type ItemOutput struct {
	Body *domain.Item
}

type ItemMutationOutput struct {
	Body *service.ItemMutation
}

type ItemStatsOutput struct {
	Body domain.ItemOverview
}

func (s *Server) handleAdminListItems(ctx context.Context, input *ListItemsInput) (*ItemListOutput, error) {
	items, err := s.services.Admin.ListItems(ctx, service.ItemListQuery{
		Search:   input.Search,
		Category: input.Category,
		Sort:     input.Sort,
	})
	if err != nil {
		return nil, err
	}
	return &ItemListOutput{Body: ItemListResponse{Items: items, Total: len(items)}}, nil
}

func (s *Server) handleAdminCreateItem(ctx context.Context, input *ItemFormInput) (*ItemMutationOutput, error) {
	res, err := s.services.Admin.CreateItem(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &ItemMutationOutput{Body: res}, nil
}

func (s *Server) handleAdminItemStats(ctx context.Context, _ *struct{}) (*ItemStatsOutput, error) {
	stats, err := s.services.Admin.ItemStats(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemStatsOutput{Body: stats}, nil
}

func (s *Server) handleAdminBulkDeleteItems(ctx context.Context, input *BulkDeleteInput) (*ItemMutationOutput, error) {
	res, err := s.services.Admin.BulkDeleteItems(ctx, input.Body.IDs)
	if err != nil {
		return nil, err
	}
	return &ItemMutationOutput{Body: res}, nil
}

func (s *Server) handleAdminGetItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	item, err := s.services.Admin.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ItemOutput{Body: item}, nil
}

func (s *Server) handleAdminUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemMutationOutput, error) {
	res, err := s.services.Admin.UpdateItem(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ItemMutationOutput{Body: res}, nil
}

func (s *Server) handleAdminDeleteItem(ctx context.Context, input *ItemIDInput) (*ItemMutationOutput, error) {
	res, err := s.services.Admin.DeleteItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ItemMutationOutput{Body: res}, nil
}

func (s *Server) handleAdminUpdateItemStatus(ctx context.Context, input *UpdateItemStatusInput) (*ItemMutationOutput, error) {
	res, err := s.services.Admin.UpdateItemStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, err
	}
	return &ItemMutationOutput{Body: res}, nil
}
