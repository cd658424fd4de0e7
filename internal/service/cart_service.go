package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/estatehub/estatehub/internal/httputil"
	"github.com/estatehub/estatehub/internal/middleware"
	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
)

// CartService handles cart entry selection and removal. Entries live only
// between selection and settlement; the payment recorder removes them.
type CartService struct {
	store storage.Store
}

// NewCartService creates a new CartService with the given storage backend.
func NewCartService(store storage.Store) *CartService {
	return &CartService{store: store}
}

// List returns the caller's live cart entries.
func (s *CartService) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		email = middleware.GetEmail(r.Context())
	}
	if email != middleware.GetEmail(r.Context()) {
		httputil.Forbidden(w, "forbidden access")
		return
	}

	entries, err := s.store.ListCartEntries(r.Context(), email)
	if err != nil {
		slog.Error("Failed to list cart entries", "email", email, "error", err)
		httputil.InternalError(w, "failed to list cart entries")
		return
	}
	if entries == nil {
		entries = []*models.CartEntry{}
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

// Create adds a catalog item to the caller's cart.
func (s *CartService) Create(w http.ResponseWriter, r *http.Request) {
	var entry models.CartEntry
	if err := httputil.ReadJSON(r, &entry); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if entry.MenuItemID == "" {
		httputil.BadRequest(w, "menuItemId is required")
		return
	}

	entry.ID = ""
	entry.Email = middleware.GetEmail(r.Context())

	if err := s.store.CreateCartEntry(r.Context(), &entry); err != nil {
		slog.Error("Failed to create cart entry", "email", entry.Email, "error", err)
		httputil.InternalError(w, "failed to add cart entry")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"insertedId": entry.ID})
}

// Delete removes a cart entry by id.
func (s *CartService) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteCartEntry(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.NotFound(w, "cart entry not found")
			return
		}
		slog.Error("Failed to delete cart entry", "cart_id", id, "error", err)
		httputil.InternalError(w, "failed to delete cart entry")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
