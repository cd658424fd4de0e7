package service

import (
	"log/slog"
	"net/http"

	"github.com/estatehub/estatehub/internal/httputil"
	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
)

// ReviewService handles property reviews.
type ReviewService struct {
	store storage.Store
}

// NewReviewService creates a new ReviewService with the given storage backend.
func NewReviewService(store storage.Store) *ReviewService {
	return &ReviewService{store: store}
}

// Create saves a review for a property.
func (s *ReviewService) Create(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := httputil.ReadJSON(r, &review); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if review.PropertyID == "" || review.BuyerEmail == "" {
		httputil.BadRequest(w, "propertyId and buyerEmail are required")
		return
	}

	review.ID = ""
	if err := s.store.CreateReview(r.Context(), &review); err != nil {
		slog.Error("Failed to save review", "property_id", review.PropertyID, "error", err)
		httputil.InternalError(w, "failed to save review")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, review)
}

// List returns the reviews for the property in the query string.
func (s *ReviewService) List(w http.ResponseWriter, r *http.Request) {
	propertyID := r.URL.Query().Get("propertyId")
	if propertyID == "" {
		httputil.BadRequest(w, "propertyId is required")
		return
	}

	reviews, err := s.store.ListReviewsByProperty(r.Context(), propertyID)
	if err != nil {
		slog.Error("Failed to list reviews", "property_id", propertyID, "error", err)
		httputil.InternalError(w, "failed to fetch reviews")
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}
