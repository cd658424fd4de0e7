package auth

import (
	"context"

	"github.com/estatehub/estatehub/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// federated sign-in, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new account with the given email and credential.
	// Returns the created account or an error if registration fails.
	Register(ctx context.Context, email, name, credential string) (*models.Account, error)

	// Authenticate verifies the credentials and returns the account if valid.
	Authenticate(ctx context.Context, email, credential string) (*models.Account, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements (length, format, etc.).
	ValidateCredential(credential string) error
}
