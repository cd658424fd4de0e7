package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estatehub/estatehub/internal/models"
)

// CreateOffer inserts a new offer. Offers always start pending regardless
// of the status the caller supplied.
func (s *SQLiteStore) CreateOffer(ctx context.Context, offer *models.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	if offer.CreatedAt == 0 {
		offer.CreatedAt = time.Now().Unix()
	}
	offer.Status = models.OfferPending

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO offers (id, property_id, buyer_email, buyer_name, offered_amount, status, buying_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		offer.ID, offer.PropertyID, offer.BuyerEmail, offer.BuyerName,
		offer.OfferedAmount, offer.Status, offer.BuyingDate, offer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// GetOffer retrieves an offer by ID. Returns (nil, nil) if absent.
func (s *SQLiteStore) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	return s.getOffer(ctx, "id", id)
}

// GetOfferByProperty retrieves the offer referencing the given property.
// Returns (nil, nil) if no offer exists for the property.
func (s *SQLiteStore) GetOfferByProperty(ctx context.Context, propertyID string) (*models.Offer, error) {
	return s.getOffer(ctx, "property_id", propertyID)
}

func (s *SQLiteStore) getOffer(ctx context.Context, column, value string) (*models.Offer, error) {
	offer := &models.Offer{}
	var txID sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, property_id, buyer_email, buyer_name, offered_amount, status, transaction_id, buying_date, created_at
		 FROM offers WHERE `+column+` = ?`,
		value,
	).Scan(&offer.ID, &offer.PropertyID, &offer.BuyerEmail, &offer.BuyerName,
		&offer.OfferedAmount, &offer.Status, &txID, &offer.BuyingDate, &offer.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer by %s: %w", column, err)
	}

	if txID.Valid {
		offer.TransactionID = txID.String
	}

	return offer, nil
}

// ListOffers retrieves all offers ordered by creation time.
func (s *SQLiteStore) ListOffers(ctx context.Context) ([]*models.Offer, error) {
	return s.listOffers(ctx,
		`SELECT id, property_id, buyer_email, buyer_name, offered_amount, status, transaction_id, buying_date, created_at
		 FROM offers ORDER BY created_at`)
}

// ListOffersByBuyer retrieves all offers submitted by the given identity.
func (s *SQLiteStore) ListOffersByBuyer(ctx context.Context, email string) ([]*models.Offer, error) {
	return s.listOffers(ctx,
		`SELECT id, property_id, buyer_email, buyer_name, offered_amount, status, transaction_id, buying_date, created_at
		 FROM offers WHERE buyer_email = ? ORDER BY created_at`, email)
}

func (s *SQLiteStore) listOffers(ctx context.Context, query string, args ...any) ([]*models.Offer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []*models.Offer
	for rows.Next() {
		offer := &models.Offer{}
		var txID sql.NullString
		if err := rows.Scan(&offer.ID, &offer.PropertyID, &offer.BuyerEmail, &offer.BuyerName,
			&offer.OfferedAmount, &offer.Status, &txID, &offer.BuyingDate, &offer.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		if txID.Valid {
			offer.TransactionID = txID.String
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}

	return offers, nil
}

// TransitionOffer moves a pending offer to a terminal status with a single
// conditional update. An offer already in a terminal state is left
// untouched and false is returned.
func (s *SQLiteStore) TransitionOffer(ctx context.Context, id, status, transactionID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE offers SET status = ?, transaction_id = NULLIF(?, '')
		 WHERE id = ? AND status = ?`,
		status, transactionID, id, models.OfferPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition offer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check transition result: %w", err)
	}

	return affected > 0, nil
}

// DeletePendingOffer removes an offer only while it is still pending.
func (s *SQLiteStore) DeletePendingOffer(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM offers WHERE id = ? AND status = ?", id, models.OfferPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete offer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}

	return affected > 0, nil
}
