package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
)

// CreateCartEntry inserts a new cart entry.
func (s *SQLiteStore) CreateCartEntry(ctx context.Context, entry *models.CartEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_entries (id, email, menu_item_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Email, entry.MenuItemID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create cart entry: %w", err)
	}

	return nil
}

// ListCartEntries retrieves the live cart entries owned by the identity.
func (s *SQLiteStore) ListCartEntries(ctx context.Context, email string) ([]*models.CartEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, menu_item_id, created_at
		 FROM cart_entries WHERE email = ? ORDER BY created_at`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.CartEntry
	for rows.Next() {
		entry := &models.CartEntry{}
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.MenuItemID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart entries: %w", err)
	}

	return entries, nil
}

// DeleteCartEntry removes a single cart entry by ID.
func (s *SQLiteStore) DeleteCartEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cart_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete cart entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteCartEntries removes the given entries if present. Already-absent
// ids are skipped silently so retried settlements don't fail on entries
// a previous attempt already removed.
func (s *SQLiteStore) DeleteCartEntries(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := "DELETE FROM cart_entries WHERE id IN (?" + repeatPlaceholder(len(ids)-1) + ")"
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cart entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check delete result: %w", err)
	}

	return deleted, nil
}
