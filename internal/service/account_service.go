package service

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/estatehub/estatehub/internal/httputil"
	"github.com/estatehub/estatehub/internal/middleware"
	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
)

// AccountService handles account management endpoints.
type AccountService struct {
	store storage.Store
}

// NewAccountService creates a new AccountService with the given storage backend.
func NewAccountService(store storage.Store) *AccountService {
	return &AccountService{store: store}
}

// Create registers an account on first sign-in. The insert is idempotent
// keyed by email: an already-known identity is acknowledged without a new
// row and without touching the existing record.
func (s *AccountService) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := httputil.ReadJSON(r, &req); err != nil || req.Email == "" {
		httputil.BadRequest(w, "email is required")
		return
	}

	account := &models.Account{
		Email:     req.Email,
		Name:      req.Name,
		Role:      models.RoleMember,
		CreatedAt: time.Now().Unix(),
	}
	created, err := s.store.CreateAccount(r.Context(), account)
	if err != nil {
		slog.Error("Failed to create account", "email", req.Email, "error", err)
		httputil.InternalError(w, "failed to create account")
		return
	}
	if !created {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message":    "account already exists",
			"insertedId": nil,
		})
		return
	}

	slog.Info("Account created", "account_id", account.ID, "email", account.Email)
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"insertedId": account.ID})
}

// List returns all accounts. Admin only (enforced by middleware).
func (s *AccountService) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		slog.Error("Failed to list accounts", "error", err)
		httputil.InternalError(w, "failed to list accounts")
		return
	}
	if accounts == nil {
		accounts = []*models.Account{}
	}
	httputil.WriteJSON(w, http.StatusOK, accounts)
}

// IsAdmin reports whether the identity in the path holds the admin role.
// A caller may only ask about itself.
func (s *AccountService) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email != middleware.GetEmail(r.Context()) {
		httputil.Forbidden(w, "forbidden access")
		return
	}

	account, err := s.store.GetAccountByEmail(r.Context(), email)
	if err != nil {
		slog.Error("Failed to get account", "email", email, "error", err)
		httputil.InternalError(w, "failed to resolve account")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"admin": account.IsAdmin()})
}

// Promote raises the target account to the admin role. Admins may not act
// on their own account, so a role can never be self-escalated.
func (s *AccountService) Promote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	target, err := s.store.GetAccountByID(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get account", "account_id", id, "error", err)
		httputil.InternalError(w, "failed to resolve account")
		return
	}
	if target == nil {
		httputil.NotFound(w, "account not found")
		return
	}
	if target.Email == middleware.GetEmail(r.Context()) {
		httputil.Forbidden(w, "cannot change own role")
		return
	}

	if err := s.store.UpdateAccountRole(r.Context(), id, models.RoleAdmin); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.NotFound(w, "account not found")
			return
		}
		slog.Error("Failed to promote account", "account_id", id, "error", err)
		httputil.InternalError(w, "failed to update role")
		return
	}

	slog.Info("Account promoted to admin", "account_id", id, "by", middleware.GetEmail(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

// Delete removes an account. Admin only (enforced by middleware).
func (s *AccountService) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteAccount(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.NotFound(w, "account not found")
			return
		}
		slog.Error("Failed to delete account", "account_id", id, "error", err)
		httputil.InternalError(w, "failed to delete account")
		return
	}

	slog.Info("Account deleted", "account_id", id, "by", middleware.GetEmail(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
