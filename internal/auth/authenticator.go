package auth

import (
	"context"

	"github.com/mkamau/chamapool/internal/models"
)

// Authenticator defines the interface for treasurer account authentication.
// The abstraction keeps the HTTP layer independent of the credential scheme
// (passwords today, passkeys or OAuth later).
type Authenticator interface {
	// Register creates a new treasurer account.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if valid.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the scheme's
	// requirements before any account is touched.
	ValidateCredential(credential string) error
}
