package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estatehub/estatehub/internal/models"
)

// CreatePayment persists a payment and its line items. The transaction id
// is the idempotency key: a payment that already exists with the same
// transaction id is not inserted again; the existing payment's ID is
// written back into the model and false is returned.
//
// The payment row and its line items commit together; cart cleanup is a
// separate operation (see DeleteCartEntries) so a failed cleanup can be
// retried without re-recording the payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) (bool, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO payments (id, email, amount, transaction_id, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(transaction_id) DO NOTHING`,
		payment.ID, payment.Email, payment.Amount, payment.TransactionID, payment.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}
	if affected == 0 {
		// Duplicate submission: report the originally recorded payment.
		var existingID string
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM payments WHERE transaction_id = ?", payment.TransactionID,
		).Scan(&existingID)
		if err != nil {
			return false, fmt.Errorf("failed to look up existing payment: %w", err)
		}
		payment.ID = existingID
		return false, nil
	}

	for _, itemID := range payment.MenuItemIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO payment_items (payment_id, menu_item_id) VALUES (?, ?)",
			payment.ID, itemID,
		); err != nil {
			return false, fmt.Errorf("failed to insert payment item: %w", err)
		}
	}

	for _, cartID := range payment.CartIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO payment_carts (payment_id, cart_entry_id) VALUES (?, ?)",
			payment.ID, cartID,
		); err != nil {
			return false, fmt.Errorf("failed to insert payment cart reference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit payment: %w", err)
	}

	return true, nil
}

// ListPaymentsByEmail retrieves the payment history for an identity,
// including each payment's line items and settled cart references.
func (s *SQLiteStore) ListPaymentsByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, amount, transaction_id, created_at
		 FROM payments WHERE email = ? ORDER BY created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.Email, &payment.Amount,
			&payment.TransactionID, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	for _, payment := range payments {
		if payment.MenuItemIDs, err = s.paymentRefs(ctx, "payment_items", "menu_item_id", payment.ID); err != nil {
			return nil, err
		}
		if payment.CartIDs, err = s.paymentRefs(ctx, "payment_carts", "cart_entry_id", payment.ID); err != nil {
			return nil, err
		}
	}

	return payments, nil
}

func (s *SQLiteStore) paymentRefs(ctx context.Context, table, column, paymentID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+column+" FROM "+table+" WHERE payment_id = ?", paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment references: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("failed to scan payment reference: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment references: %w", err)
	}

	return refs, nil
}

// AdminStats computes the administrative counters and total revenue.
// Revenue is zero, not an error, when no payments exist.
func (s *SQLiteStore) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	stats := &models.AdminStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM accounts),
			(SELECT COUNT(*) FROM menu_items),
			(SELECT COUNT(*) FROM payments),
			(SELECT COALESCE(SUM(amount), 0) FROM payments)
	`).Scan(&stats.Users, &stats.MenuItems, &stats.Orders, &stats.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to compute admin stats: %w", err)
	}

	return stats, nil
}

// OrderStats expands each payment's line items, joins them to the catalog
// by item id and groups by category. The inner join silently drops line
// items whose catalog entry has been deleted; reconstructing deleted
// catalog metadata is out of scope.
func (s *SQLiteStore) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.category, COUNT(*) AS quantity, SUM(m.price) AS revenue
		FROM payment_items pi
		JOIN menu_items m ON m.id = pi.menu_item_id
		GROUP BY m.category
		ORDER BY m.category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute order stats: %w", err)
	}
	defer rows.Close()

	stats := []models.CategoryStat{}
	for rows.Next() {
		var stat models.CategoryStat
		if err := rows.Scan(&stat.Category, &stat.Quantity, &stat.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan category stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category stats: %w", err)
	}

	return stats, nil
}
