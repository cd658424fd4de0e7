package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
)

// CreateAccount inserts a new account keyed by email. A concurrent or
// repeated insert for the same email is not an error: the existing row
// stays untouched and false is returned, mirroring CreatePayment.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) (bool, error) {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}
	if account.Role == "" {
		account.Role = models.RoleMember
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, name, role, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO NOTHING`,
		account.ID, account.Email, account.Name, account.Role, account.PasswordHash, account.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}

	return affected > 0, nil
}

// GetAccountByEmail retrieves an account by its email address.
// Returns (nil, nil) if no account exists for the email.
func (s *SQLiteStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getAccount(ctx, "email", email)
}

// GetAccountByID retrieves an account by its ID.
// Returns (nil, nil) if no account exists with the id.
func (s *SQLiteStore) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return s.getAccount(ctx, "id", id)
}

func (s *SQLiteStore) getAccount(ctx context.Context, column, value string) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, password_hash, created_at
		 FROM accounts WHERE `+column+` = ?`,
		value,
	).Scan(&account.ID, &account.Email, &account.Name, &account.Role, &account.PasswordHash, &account.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by %s: %w", column, err)
	}

	return account, nil
}

// ListAccounts retrieves all accounts ordered by creation time.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, name, role, password_hash, created_at
		 FROM accounts ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account := &models.Account{}
		if err := rows.Scan(&account.ID, &account.Email, &account.Name, &account.Role,
			&account.PasswordHash, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// UpdateAccountRole sets the role of the account with the given id.
func (s *SQLiteStore) UpdateAccountRole(ctx context.Context, id, role string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET role = ? WHERE id = ?", role, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update account role: %w", err)
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

// DeleteAccount removes an account by ID.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
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
