// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence. The application layer
// handles specific outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when a create or update violates a
	// uniqueness constraint (email or external ID). Check-then-create races
	// between concurrent signups surface through this error.
	ErrDuplicateAccount = errors.New("account already exists")
)

// AccountRepository defines the standard operations for account persistence.
// Implementations must enforce email and external-ID uniqueness atomically;
// the auth workflow relies on that to resolve concurrent signup races.
type AccountRepository interface {
	// FindByID retrieves an account by its unique ID. The password hash is
	// not populated; callers of FindByID never need it.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves an account by its normalized email, including
	// the password hash for credential verification.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByExternalIDOrEmail retrieves an account matching either the
	// external provider ID or the normalized email, including the password
	// hash. A single compound query, so OAuth login sees no race window
	// between two sequential lookups.
	FindByExternalIDOrEmail(ctx context.Context, externalID, email string) (*entity.Account, error)

	// Create persists a new account and assigns its ID and timestamps.
	Create(ctx context.Context, account *entity.Account) error

	// Update persists changes to an existing account's mutable fields
	// (external ID, name, avatar URL) without touching anything else.
	Update(ctx context.Context, account *entity.Account) error
}
