package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/estatehub/estatehub/internal/httputil"
	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
)

// CatalogService handles menu item CRUD. Categories and prices from here
// feed the per-category revenue breakdown.
type CatalogService struct {
	store storage.Store
}

// NewCatalogService creates a new CatalogService with the given storage backend.
func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

// List returns the full catalog.
func (s *CatalogService) List(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListMenuItems(r.Context())
	if err != nil {
		slog.Error("Failed to list menu items", "error", err)
		httputil.InternalError(w, "failed to list menu items")
		return
	}
	if items == nil {
		items = []*models.MenuItem{}
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

// Create adds a catalog item. Admin only (enforced by middleware).
func (s *CatalogService) Create(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := httputil.ReadJSON(r, &item); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if item.Name == "" || item.Category == "" {
		httputil.BadRequest(w, "name and category are required")
		return
	}

	item.ID = ""
	if err := s.store.CreateMenuItem(r.Context(), &item); err != nil {
		slog.Error("Failed to create menu item", "error", err)
		httputil.InternalError(w, "failed to create menu item")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, item)
}

// Update replaces a catalog item's fields. Admin only (enforced by middleware).
func (s *CatalogService) Update(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := httputil.ReadJSON(r, &item); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	item.ID = chi.URLParam(r, "id")

	if err := s.store.UpdateMenuItem(r.Context(), &item); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.NotFound(w, "menu item not found")
			return
		}
		slog.Error("Failed to update menu item", "menu_item_id", item.ID, "error", err)
		httputil.InternalError(w, "failed to update menu item")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// Delete removes a catalog item. Admin only (enforced by middleware).
// Payments referencing the item keep their line items; those lines simply
// drop out of the per-category breakdown.
func (s *CatalogService) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteMenuItem(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.NotFound(w, "menu item not found")
			return
		}
		slog.Error("Failed to delete menu item", "menu_item_id", id, "error", err)
		httputil.InternalError(w, "failed to delete menu item")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
