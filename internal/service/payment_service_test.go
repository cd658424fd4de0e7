package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/estatehub/estatehub/internal/auth"
	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
	"github.com/estatehub/estatehub/internal/storage/sqlite"
)

func TestPaymentSettlement(t *testing.T) {
	server, store, jwtManager := setupTestServer(t)
	token := seedAccount(t, store, jwtManager, "payer@x.com", models.RoleMember)

	// Two cart entries awaiting settlement.
	var cartIDs []string
	for i := 0; i < 2; i++ {
		entry := &models.CartEntry{Email: "payer@x.com", MenuItemID: "item"}
		if err := store.CreateCartEntry(context.Background(), entry); err != nil {
			t.Fatalf("failed to seed cart entry: %v", err)
		}
		cartIDs = append(cartIDs, entry.ID)
	}

	payment := map[string]any{
		"amount":        99.5,
		"transactionId": "tx-settle-1",
		"cartIds":       cartIDs,
		"menuItemIds":   []string{"m1", "m2"},
	}

	t.Run("payment removes the settled cart entries", func(t *testing.T) {
		var body struct {
			PaymentID    string `json:"paymentId"`
			DeletedCount int64  `json:"deletedCount"`
		}
		resp := doJSON(t, http.MethodPost, server.URL+"/payments", token, payment, &body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Status mismatch: got %d, want 201", resp.StatusCode)
		}
		if body.DeletedCount != 2 {
			t.Errorf("DeletedCount mismatch: got %d, want 2", body.DeletedCount)
		}

		entries, err := store.ListCartEntries(context.Background(), "payer@x.com")
		if err != nil {
			t.Fatalf("ListCartEntries failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Expected no live cart entries, got %d", len(entries))
		}
	})

	t.Run("identical retry is a no-op, not an error", func(t *testing.T) {
		var body struct {
			PaymentID    string `json:"paymentId"`
			DeletedCount int64  `json:"deletedCount"`
			Duplicate    bool   `json:"duplicate"`
		}
		resp := doJSON(t, http.MethodPost, server.URL+"/payments", token, payment, &body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Status mismatch: got %d, want 200", resp.StatusCode)
		}
		if !body.Duplicate {
			t.Error("Expected the retry to be flagged as a duplicate")
		}
		if body.DeletedCount != 0 {
			t.Errorf("Expected 0 deletions on retry, got %d", body.DeletedCount)
		}

		payments, err := store.ListPaymentsByEmail(context.Background(), "payer@x.com")
		if err != nil {
			t.Fatalf("ListPaymentsByEmail failed: %v", err)
		}
		if len(payments) != 1 {
			t.Errorf("Expected exactly one payment, got %d", len(payments))
		}
	})

	t.Run("payment history is self-only", func(t *testing.T) {
		other := seedAccount(t, store, jwtManager, "other@x.com", models.RoleMember)

		resp := doJSON(t, http.MethodGet, server.URL+"/payments/payer@x.com", other, nil, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Status mismatch: got %d, want 403", resp.StatusCode)
		}

		var payments []models.Payment
		resp = doJSON(t, http.MethodGet, server.URL+"/payments/payer@x.com", token, nil, &payments)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Status mismatch: got %d, want 200", resp.StatusCode)
		}
		if len(payments) != 1 {
			t.Errorf("Payment count mismatch: got %d, want 1", len(payments))
		}
	})

	t.Run("paying for someone else is forbidden", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/payments", token, map[string]any{
			"email":         "other@x.com",
			"amount":        10.0,
			"transactionId": "tx-foreign",
		}, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Status mismatch: got %d, want 403", resp.StatusCode)
		}
	})
}

// cartCleanupFailingStore fails cart deletion while everything else passes
// through to the real store.
type cartCleanupFailingStore struct {
	storage.Store
}

func (s *cartCleanupFailingStore) DeleteCartEntries(ctx context.Context, ids []string) (int64, error) {
	return 0, errors.New("cart storage unavailable")
}

func TestPaymentPartialSettlement(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "estatehub-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-for-tests-only", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)
	server := httptest.NewServer(NewRouter(
		&cartCleanupFailingStore{Store: store}, jwtManager, authenticator))
	t.Cleanup(server.Close)

	token := seedAccount(t, store, jwtManager, "payer@x.com", models.RoleMember)

	entry := &models.CartEntry{Email: "payer@x.com", MenuItemID: "item"}
	if err := store.CreateCartEntry(context.Background(), entry); err != nil {
		t.Fatalf("failed to seed cart entry: %v", err)
	}

	// The payment must be durable even though cleanup fails, and the
	// response must carry the recorded payment so the caller can retry.
	var body struct {
		Message   string `json:"message"`
		PaymentID string `json:"paymentId"`
	}
	resp := doJSON(t, http.MethodPost, server.URL+"/payments", token, map[string]any{
		"amount":        15.0,
		"transactionId": "tx-partial-1",
		"cartIds":       []string{entry.ID},
	}, &body)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("Status mismatch: got %d, want 502", resp.StatusCode)
	}
	if body.PaymentID == "" {
		t.Error("Expected the response to carry the recorded payment id")
	}

	payments, err := store.ListPaymentsByEmail(context.Background(), "payer@x.com")
	if err != nil {
		t.Fatalf("ListPaymentsByEmail failed: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("Expected the payment to be recorded, got %d payments", len(payments))
	}
	if payments[0].ID != body.PaymentID {
		t.Errorf("Payment id mismatch: got %s, want %s", body.PaymentID, payments[0].ID)
	}

	entries, err := store.ListCartEntries(context.Background(), "payer@x.com")
	if err != nil {
		t.Fatalf("ListCartEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected the cart entry to survive the failed cleanup, got %d", len(entries))
	}
}
