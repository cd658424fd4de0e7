package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estatehub/estatehub/internal/models"
)

// CreateProperty inserts a new listing. New properties always start available.
func (s *SQLiteStore) CreateProperty(ctx context.Context, property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.CreatedAt == 0 {
		property.CreatedAt = time.Now().Unix()
	}
	if property.Status == "" {
		property.Status = models.PropertyAvailable
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO properties (id, title, location, agent, price, status, transaction_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?)`,
		property.ID, property.Title, property.Location, property.Agent,
		property.Price, property.Status, property.TransactionID, property.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

// GetProperty retrieves a property by ID. Returns (nil, nil) if absent.
func (s *SQLiteStore) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	property := &models.Property{}
	var txID sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, location, agent, price, status, transaction_id, created_at
		 FROM properties WHERE id = ?`,
		id,
	).Scan(&property.ID, &property.Title, &property.Location, &property.Agent,
		&property.Price, &property.Status, &txID, &property.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if txID.Valid {
		property.TransactionID = txID.String
	}

	return property, nil
}

// ListProperties retrieves all listings ordered by creation time.
func (s *SQLiteStore) ListProperties(ctx context.Context) ([]*models.Property, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, location, agent, price, status, transaction_id, created_at
		 FROM properties ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		property := &models.Property{}
		var txID sql.NullString
		if err := rows.Scan(&property.ID, &property.Title, &property.Location, &property.Agent,
			&property.Price, &property.Status, &txID, &property.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		if txID.Valid {
			property.TransactionID = txID.String
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	return properties, nil
}

// BuyProperty transitions a property from available to bought in a single
// conditional update. Under concurrent buys exactly one caller sees true;
// the loser's transaction reference is never written.
func (s *SQLiteStore) BuyProperty(ctx context.Context, id, transactionID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE properties SET status = ?, transaction_id = ?
		 WHERE id = ? AND status = ?`,
		models.PropertyBought, transactionID, id, models.PropertyAvailable,
	)
	if err != nil {
		return false, fmt.Errorf("failed to buy property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check buy result: %w", err)
	}

	return affected > 0, nil
}
