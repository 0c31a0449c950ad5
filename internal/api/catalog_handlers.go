package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/echoverse/echo-web/internal/errors"
	"github.com/echoverse/echo-web/internal/http/response"
	"github.com/echoverse/echo-web/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	s.router.Get("/", s.handleHome)
	s.router.Get("/explore", s.handleExplore)
	s.router.Get("/search", s.handleSearch)

	// The two-segment item route and the one-segment category route are distinct patterns.
	s.router.Get("/{categorySlug}/{itemSlug}", s.handleItemPage)
	s.router.Get("/{categorySlug}", s.handleCategoryPage)
}

// handleHome returns active categories and featured items.
// GET /.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Catalog.Home(r.Context())
	if err != nil {
		s.writeCatalogError(w, err, "")
		return
	}
	response.Success(w, view, s.logger)
}

// handleExplore returns every active category.
// GET /explore.
func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Catalog.Explore(r.Context())
	if err != nil {
		s.writeCatalogError(w, err, "")
		return
	}
	response.Success(w, view, s.logger)
}

// handleSearch runs a server-side search.
// GET /search?q=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeCatalogError(w, err, "")
		return
	}
	response.Success(w, view, s.logger)
}

// handleCategoryPage returns a category with its filtered and sorted items.
// GET /{categorySlug}?search=&category=&rating=&sort=.
func (s *Server) handleCategoryPage(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "categorySlug")
	q := r.URL.Query()

	view, err := s.services.Catalog.CategoryPage(r.Context(), categorySlug, service.CategoryPageQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Rating:   q.Get("rating"),
		Sort:     q.Get("sort"),
	})
	if err != nil {
		s.writeCatalogError(w, err, "")
		return
	}
	response.Success(w, view, s.logger)
}

// handleItemPage returns an item with related items from its category.
// GET /{categorySlug}/{itemSlug}.
func (s *Server) handleItemPage(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "categorySlug")
	itemSlug := chi.URLParam(r, "itemSlug")

	view, err := s.services.Catalog.ItemPage(r.Context(), categorySlug, itemSlug)
	if err != nil {
		s.writeCatalogError(w, err, categorySlug)
		return
	}
	response.Success(w, view, s.logger)
}

// handleNotFound answers unknown paths with the not-found view.
func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	view := s.services.Catalog.NotFound(domainerrors.ErrNotFound, "")
	response.NotFound(w, view.Message, view, s.logger)
}

// writeCatalogError renders not-found misses with safe links and everything else as an envelope.
// categorySlug is offered as a way back when only the item was missing.
func (s *Server) writeCatalogError(w http.ResponseWriter, err error, categorySlug string) {
	code := domainerrors.CodeOf(err)
	if !code.IsNotFound() {
		response.HandleError(w, err, s.logger)
		return
	}

	view := s.services.Catalog.NotFound(err, categorySlug)
	response.Write(w, http.StatusNotFound, response.Envelope{
		Success: false,
		Data:    view,
		Error:   view.Message,
		Code:    string(code),
	}, s.logger)
}
