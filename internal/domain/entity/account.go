// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted identity record for a person using the system.
// One record covers both password-based and Google sign-in; a linked account
// carries both a password hash and an external ID.
type Account struct {
	ID           uuid.UUID    // Store-assigned unique identifier, immutable after creation.
	Email        string       // Unique login identifier, normalized to lowercase.
	PasswordHash string       // Bcrypt hash; empty for OAuth-only accounts. Never leaves the store boundary.
	Name         string       // Optional display name.
	AvatarURL    string       // Optional profile picture URL, usually backfilled from Google.
	AuthProvider AuthProvider // How the account was created: local signup or Google sign-in.
	ExternalID   string       // Google 'sub' claim; empty unless the account is linked.
	IsActive     bool         // Deactivated accounts fail every authentication flow.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy of the account with the password hash stripped,
// safe to hand to delivery layers.
func (a *Account) Sanitized() *Account {
	clone := *a
	clone.PasswordHash = ""

	return &clone
}
