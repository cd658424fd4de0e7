// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/estatehub/estatehub/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for marketplace storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Lookup methods that can miss return (nil, nil) for an absent entity;
// mutation methods return ErrNotFound. Conditional transitions report
// whether the guard held via their bool result instead of erroring, so
// callers can distinguish "lost the race" from "store failure".
type Store interface {
	// Accounts
	// CreateAccount inserts the account unless one with the same email
	// already exists; the email is the idempotency key and an existing
	// record is never touched. Returns false when the email was taken.
	CreateAccount(ctx context.Context, account *models.Account) (bool, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	UpdateAccountRole(ctx context.Context, id, role string) error
	DeleteAccount(ctx context.Context, id string) error

	// Properties
	CreateProperty(ctx context.Context, property *models.Property) error
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	ListProperties(ctx context.Context) ([]*models.Property, error)
	// BuyProperty transitions the property from available to bought,
	// recording the transaction reference. Returns false when the property
	// is absent or already bought; an earlier transaction reference is
	// never overwritten.
	BuyProperty(ctx context.Context, id, transactionID string) (bool, error)

	// Offers
	CreateOffer(ctx context.Context, offer *models.Offer) error
	GetOffer(ctx context.Context, id string) (*models.Offer, error)
	GetOfferByProperty(ctx context.Context, propertyID string) (*models.Offer, error)
	ListOffers(ctx context.Context) ([]*models.Offer, error)
	ListOffersByBuyer(ctx context.Context, email string) ([]*models.Offer, error)
	// TransitionOffer moves a pending offer to a terminal status. Returns
	// false when the offer is absent or already terminal.
	TransitionOffer(ctx context.Context, id, status, transactionID string) (bool, error)
	// DeletePendingOffer removes an offer only while it is still pending.
	DeletePendingOffer(ctx context.Context, id string) (bool, error)

	// Cart entries
	CreateCartEntry(ctx context.Context, entry *models.CartEntry) error
	ListCartEntries(ctx context.Context, email string) ([]*models.CartEntry, error)
	DeleteCartEntry(ctx context.Context, id string) error
	// DeleteCartEntries removes the given entries if present and returns
	// how many were actually deleted. Already-absent ids are not an error,
	// which keeps payment settlement safely retryable.
	DeleteCartEntries(ctx context.Context, ids []string) (int64, error)

	// Payments
	// CreatePayment persists the payment and its line items. A payment
	// with the same TransactionID as an existing one is not inserted
	// again; the existing payment's ID is written back and false returned.
	CreatePayment(ctx context.Context, payment *models.Payment) (bool, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]*models.Payment, error)

	// Menu
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error

	// Reviews
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviewsByProperty(ctx context.Context, propertyID string) ([]*models.Review, error)

	// Analytics
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	OrderStats(ctx context.Context) ([]models.CategoryStat, error)

	// Close releases any resources held by the store.
	Close() error
}
