package service

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/estatehub/estatehub/internal/httputil"
	"github.com/estatehub/estatehub/internal/middleware"
	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
)

// PropertyService handles listing reads and the buy transition.
type PropertyService struct {
	store storage.Store
}

// NewPropertyService creates a new PropertyService with the given storage backend.
func NewPropertyService(store storage.Store) *PropertyService {
	return &PropertyService{store: store}
}

// List returns all listings.
func (s *PropertyService) List(w http.ResponseWriter, r *http.Request) {
	properties, err := s.store.ListProperties(r.Context())
	if err != nil {
		slog.Error("Failed to list properties", "error", err)
		httputil.InternalError(w, "failed to list properties")
		return
	}
	if properties == nil {
		properties = []*models.Property{}
	}
	httputil.WriteJSON(w, http.StatusOK, properties)
}

// Get returns a single listing by id.
func (s *PropertyService) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := s.store.GetProperty(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get property", "property_id", id, "error", err)
		httputil.InternalError(w, "failed to get property")
		return
	}
	if property == nil {
		httputil.NotFound(w, "property not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, property)
}

// Create adds a new listing. Admin only (enforced by middleware).
func (s *PropertyService) Create(w http.ResponseWriter, r *http.Request) {
	var property models.Property
	if err := httputil.ReadJSON(r, &property); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if property.Title == "" {
		httputil.BadRequest(w, "title is required")
		return
	}

	// Fresh listings are always available regardless of caller input.
	property.ID = ""
	property.Status = models.PropertyAvailable
	property.TransactionID = ""

	if err := s.store.CreateProperty(r.Context(), &property); err != nil {
		slog.Error("Failed to create property", "error", err)
		httputil.InternalError(w, "failed to create property")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, property)
}

// Buy idempotently marks a property bought, recording the transaction
// reference. The store applies the available-to-bought transition as one
// conditional update, so under concurrent buys exactly one caller wins;
// everyone else gets a conflict without overwriting the recorded
// transaction reference.
func (s *PropertyService) Buy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := httputil.ReadJSON(r, &req); err != nil || req.TransactionID == "" {
		httputil.BadRequest(w, "transactionId is required")
		return
	}

	bought, err := s.store.BuyProperty(r.Context(), id, req.TransactionID)
	if err != nil {
		slog.Error("Failed to buy property", "property_id", id, "error", err)
		httputil.InternalError(w, "failed to buy property")
		return
	}
	if !bought {
		// Distinguish a missing property from one already sold.
		property, err := s.store.GetProperty(r.Context(), id)
		if err != nil {
			slog.Error("Failed to re-read property", "property_id", id, "error", err)
			httputil.InternalError(w, "failed to buy property")
			return
		}
		if property == nil {
			httputil.NotFound(w, "property not found")
			return
		}
		httputil.Conflict(w, "property already bought")
		return
	}

	slog.Info("Property bought",
		"property_id", id,
		"transaction_id", req.TransactionID,
		"buyer", middleware.GetEmail(r.Context()),
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"modifiedCount": 1,
		"transactionId": req.TransactionID,
	})
}
