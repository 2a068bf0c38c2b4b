// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleLoginInput carries the Google ID token sent by the client.
type GoogleLoginInput struct {
	Credential string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated account (password hash stripped)
// together with the freshly issued token pair.
type AuthOutput struct {
	User         *entity.Account
	AccessToken  string
	RefreshToken string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Signup registers a new local account and issues a session.
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)

	// Login verifies email/password credentials and issues a session.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GoogleLogin verifies a Google ID token, then links, updates, or
	// creates the matching account and issues a session.
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*AuthOutput, error)

	// CurrentSession loads the account behind a verified access token,
	// failing if it no longer exists or has been deactivated.
	CurrentSession(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
}
