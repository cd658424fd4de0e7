package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
)

// CreateMenuItem inserts a new catalog item.
func (s *SQLiteStore) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO menu_items (id, name, category, price, recipe, image)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Category, item.Price, item.Recipe, item.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	return nil
}

// GetMenuItem retrieves a catalog item by ID. Returns (nil, nil) if absent.
func (s *SQLiteStore) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, category, price, recipe, image FROM menu_items WHERE id = ?",
		id,
	).Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.Recipe, &item.Image)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return item, nil
}

// ListMenuItems retrieves the full catalog.
func (s *SQLiteStore) ListMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, price, recipe, image FROM menu_items ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price,
			&item.Recipe, &item.Image); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}

	return items, nil
}

// UpdateMenuItem replaces a catalog item's mutable fields.
func (s *SQLiteStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE menu_items SET name = ?, category = ?, price = ?, recipe = ?, image = ?
		 WHERE id = ?`,
		item.Name, item.Category, item.Price, item.Recipe, item.Image, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteMenuItem removes a catalog item by ID.
func (s *SQLiteStore) DeleteMenuItem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
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
