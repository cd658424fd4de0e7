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

// OfferService handles the offer lifecycle: creation (always pending),
// explicit transitions to a terminal status, and pending-only deletion.
type OfferService struct {
	store storage.Store
}

// NewOfferService creates a new OfferService with the given storage backend.
func NewOfferService(store storage.Store) *OfferService {
	return &OfferService{store: store}
}

// isAdmin resolves the caller's role from the store.
func (s *OfferService) isAdmin(r *http.Request) bool {
	account, err := s.store.GetAccountByEmail(r.Context(), middleware.GetEmail(r.Context()))
	if err != nil {
		return false
	}
	return account.IsAdmin()
}

// Create submits a new offer. The buyer identity comes from the verified
// token, and the offer always starts pending no matter what the caller sent.
func (s *OfferService) Create(w http.ResponseWriter, r *http.Request) {
	var offer models.Offer
	if err := httputil.ReadJSON(r, &offer); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if offer.PropertyID == "" {
		httputil.BadRequest(w, "propertyId is required")
		return
	}

	offer.ID = ""
	offer.BuyerEmail = middleware.GetEmail(r.Context())
	offer.Status = models.OfferPending
	offer.TransactionID = ""

	if err := s.store.CreateOffer(r.Context(), &offer); err != nil {
		slog.Error("Failed to create offer", "property_id", offer.PropertyID, "error", err)
		httputil.InternalError(w, "failed to submit the offer")
		return
	}

	slog.Info("Offer created", "offer_id", offer.ID, "property_id", offer.PropertyID, "buyer", offer.BuyerEmail)
	httputil.WriteJSON(w, http.StatusCreated, offer)
}

// List returns offers. With a buyer filter, only the buyer themselves or an
// admin may read; without one the caller must be an admin.
func (s *OfferService) List(w http.ResponseWriter, r *http.Request) {
	buyer := r.URL.Query().Get("buyer")
	if buyer == "" {
		buyer = r.URL.Query().Get("email")
	}

	caller := middleware.GetEmail(r.Context())
	if buyer == "" {
		if !s.isAdmin(r) {
			httputil.Forbidden(w, "forbidden access")
			return
		}
		offers, err := s.store.ListOffers(r.Context())
		if err != nil {
			slog.Error("Failed to list offers", "error", err)
			httputil.InternalError(w, "failed to fetch offers")
			return
		}
		writeOffers(w, offers)
		return
	}

	if buyer != caller && !s.isAdmin(r) {
		httputil.Forbidden(w, "forbidden access")
		return
	}

	offers, err := s.store.ListOffersByBuyer(r.Context(), buyer)
	if err != nil {
		slog.Error("Failed to list offers", "buyer", buyer, "error", err)
		httputil.InternalError(w, "failed to fetch offers")
		return
	}
	writeOffers(w, offers)
}

func writeOffers(w http.ResponseWriter, offers []*models.Offer) {
	if offers == nil {
		offers = []*models.Offer{}
	}
	httputil.WriteJSON(w, http.StatusOK, offers)
}

// Get returns a single offer by id.
func (s *OfferService) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	offer, err := s.store.GetOffer(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get offer", "offer_id", id, "error", err)
		httputil.InternalError(w, "failed to get offer")
		return
	}
	if offer == nil {
		httputil.NotFound(w, "offer not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, offer)
}

// GetByProperty returns the offer referencing the given property.
func (s *OfferService) GetByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyId")

	offer, err := s.store.GetOfferByProperty(r.Context(), propertyID)
	if err != nil {
		slog.Error("Failed to get offer by property", "property_id", propertyID, "error", err)
		httputil.InternalError(w, "failed to get offer")
		return
	}
	if offer == nil {
		httputil.NotFound(w, "offer not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, offer)
}

// Transition moves a pending offer to bought or rejected. Bought requires
// a transaction reference. Only the offer's buyer or an admin may
// transition it, and a terminal offer is never touched again.
func (s *OfferService) Transition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status        string `json:"status"`
		TransactionID string `json:"transactionId"`
	}
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Status != models.OfferBought && req.Status != models.OfferRejected {
		httputil.BadRequest(w, "status must be bought or rejected")
		return
	}
	if req.Status == models.OfferBought && req.TransactionID == "" {
		httputil.BadRequest(w, "transactionId is required to mark an offer bought")
		return
	}

	offer, err := s.store.GetOffer(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get offer", "offer_id", id, "error", err)
		httputil.InternalError(w, "failed to update offer")
		return
	}
	if offer == nil {
		httputil.NotFound(w, "offer not found")
		return
	}
	if offer.BuyerEmail != middleware.GetEmail(r.Context()) && !s.isAdmin(r) {
		httputil.Forbidden(w, "forbidden access")
		return
	}

	transitioned, err := s.store.TransitionOffer(r.Context(), id, req.Status, req.TransactionID)
	if err != nil {
		slog.Error("Failed to transition offer", "offer_id", id, "error", err)
		httputil.InternalError(w, "failed to update offer")
		return
	}
	if !transitioned {
		httputil.Conflict(w, "offer already settled")
		return
	}

	slog.Info("Offer transitioned", "offer_id", id, "status", req.Status)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"modifiedCount": 1, "status": req.Status})
}

// Delete removes an offer. Only its buyer or an admin may delete, and only
// while the offer is still pending.
func (s *OfferService) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	offer, err := s.store.GetOffer(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get offer", "offer_id", id, "error", err)
		httputil.InternalError(w, "failed to delete offer")
		return
	}
	if offer == nil {
		httputil.NotFound(w, "offer not found")
		return
	}
	if offer.BuyerEmail != middleware.GetEmail(r.Context()) && !s.isAdmin(r) {
		httputil.Forbidden(w, "forbidden access")
		return
	}
	if offer.Terminal() {
		httputil.Conflict(w, "offer already settled")
		return
	}

	deleted, err := s.store.DeletePendingOffer(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete offer", "offer_id", id, "error", err)
		httputil.InternalError(w, "failed to delete offer")
		return
	}
	if !deleted {
		// Settled between the read and the delete.
		httputil.Conflict(w, "offer already settled")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "offer deleted successfully"})
}
