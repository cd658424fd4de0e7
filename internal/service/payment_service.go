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

// PaymentService records payments and cascades cart entry cleanup.
//
// The store offers no multi-table transaction spanning the payment insert
// and the cart deletion, so the flow is built to be safely retryable
// instead: the insert is idempotent on the transaction id and the deletion
// is remove-if-present. A deletion failure after a recorded payment is
// surfaced as a partial success, never swallowed.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

type paymentResponse struct {
	PaymentID    string `json:"paymentId"`
	DeletedCount int64  `json:"deletedCount"`
	Duplicate    bool   `json:"duplicate,omitempty"`
}

// Create records a payment and removes the cart entries it settles.
func (s *PaymentService) Create(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := httputil.ReadJSON(r, &payment); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if payment.TransactionID == "" {
		httputil.BadRequest(w, "transactionId is required")
		return
	}
	if payment.Amount <= 0 {
		httputil.BadRequest(w, "amount must be positive")
		return
	}

	caller := middleware.GetEmail(r.Context())
	if payment.Email == "" {
		payment.Email = caller
	}
	if payment.Email != caller {
		httputil.Forbidden(w, "forbidden access")
		return
	}

	payment.ID = ""
	created, err := s.store.CreatePayment(r.Context(), &payment)
	if err != nil {
		slog.Error("Failed to record payment", "transaction_id", payment.TransactionID, "error", err)
		httputil.InternalError(w, "failed to record payment")
		return
	}
	if !created {
		slog.Info("Duplicate payment submission ignored",
			"payment_id", payment.ID, "transaction_id", payment.TransactionID)
	}

	// Cart cleanup runs after the payment is durable. Entries a previous
	// attempt already removed are simply absent, so retries settle cleanly.
	deleted, err := s.store.DeleteCartEntries(r.Context(), payment.CartIDs)
	if err != nil {
		slog.Error("Payment recorded but cart cleanup failed",
			"payment_id", payment.ID,
			"transaction_id", payment.TransactionID,
			"cart_ids", payment.CartIDs,
			"error", err,
		)
		httputil.WriteJSON(w, http.StatusBadGateway, map[string]any{
			"message":   "payment recorded but cart cleanup incomplete; retry the request",
			"paymentId": payment.ID,
		})
		return
	}

	slog.Info("Payment recorded",
		"payment_id", payment.ID,
		"transaction_id", payment.TransactionID,
		"email", payment.Email,
		"deleted_cart_entries", deleted,
	)

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	httputil.WriteJSON(w, status, paymentResponse{
		PaymentID:    payment.ID,
		DeletedCount: deleted,
		Duplicate:    !created,
	})
}

// ListByEmail returns the payment history for the identity in the path.
// A caller may only read their own history.
func (s *PaymentService) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email != middleware.GetEmail(r.Context()) {
		httputil.Forbidden(w, "forbidden access")
		return
	}

	payments, err := s.store.ListPaymentsByEmail(r.Context(), email)
	if err != nil {
		slog.Error("Failed to list payments", "email", email, "error", err)
		httputil.InternalError(w, "failed to list payments")
		return
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	httputil.WriteJSON(w, http.StatusOK, payments)
}
