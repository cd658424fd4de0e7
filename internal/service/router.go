// Package service implements the HTTP services for the marketplace:
// account management, the offer/payment workflow and the admin analytics.
package service

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/estatehub/estatehub/internal/auth"
	"github.com/estatehub/estatehub/internal/middleware"
	"github.com/estatehub/estatehub/internal/storage"
)

// NewRouter assembles the full HTTP surface. Every privileged route runs
// through token verification first and, where required, per-request role
// resolution from the store.
func NewRouter(store storage.Store, jwtManager *auth.JWTManager, authenticator auth.Authenticator) *chi.Mux {
	authSvc := NewAuthService(authenticator, jwtManager, slog.Default())
	accountSvc := NewAccountService(store)
	propertySvc := NewPropertyService(store)
	offerSvc := NewOfferService(store)
	cartSvc := NewCartService(store)
	paymentSvc := NewPaymentService(store)
	statsSvc := NewStatsService(store)
	catalogSvc := NewCatalogService(store)
	reviewSvc := NewReviewService(store)

	requireAuth := middleware.RequireAuth(jwtManager)
	requireAdmin := middleware.RequireAdmin(store)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Token issuance and password auth.
	r.Post("/auth/token", authSvc.Token)
	r.Post("/auth/register", authSvc.Register)
	r.Post("/auth/login", authSvc.Login)

	// Accounts. Creation is open (first sign-in upsert); reads and role
	// mutation are privileged.
	r.Post("/accounts", accountSvc.Create)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/accounts/admin/{email}", accountSvc.IsAdmin)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/accounts", accountSvc.List)
			r.Patch("/accounts/admin/{id}", accountSvc.Promote)
			r.Delete("/accounts/{id}", accountSvc.Delete)
		})
	})

	// Properties. Reads are public, the buy transition needs a verified buyer.
	r.Get("/properties", propertySvc.List)
	r.Get("/properties/{id}", propertySvc.Get)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Patch("/properties/buy/{id}", propertySvc.Buy)
		r.With(requireAdmin).Post("/properties", propertySvc.Create)
	})

	// Offers.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/offers", offerSvc.Create)
		r.Get("/offers", offerSvc.List)
		r.Get("/offers/{id}", offerSvc.Get)
		r.Get("/offers/property/{propertyId}", offerSvc.GetByProperty)
		r.Patch("/offers/{id}/status", offerSvc.Transition)
		r.Delete("/offers/{id}", offerSvc.Delete)
	})

	// Carts and payments.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/carts", cartSvc.List)
		r.Post("/carts", cartSvc.Create)
		r.Delete("/carts/{id}", cartSvc.Delete)
		r.Post("/payments", paymentSvc.Create)
		r.Get("/payments/{email}", paymentSvc.ListByEmail)
	})

	// Catalog and reviews.
	r.Get("/menu", catalogSvc.List)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Post("/menu", catalogSvc.Create)
		r.Patch("/menu/{id}", catalogSvc.Update)
		r.Delete("/menu/{id}", catalogSvc.Delete)
	})
	r.Post("/reviews", reviewSvc.Create)
	r.Get("/reviews", reviewSvc.List)

	// Analytics, admin only.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Get("/admin-stats", statsSvc.AdminStats)
		r.Get("/order-stats", statsSvc.OrderStats)
	})

	return r
}
