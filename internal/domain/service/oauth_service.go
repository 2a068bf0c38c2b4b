package service

import (
	"context"
	"errors"

	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"
)

// OAuth verification failure modes the workflow maps to distinct HTTP statuses.
var (
	// ErrOAuthNotConfigured is returned when no client credentials are present.
	ErrOAuthNotConfigured = errors.New("oauth provider is not configured")
	// ErrIDTokenExpired is returned for an otherwise valid assertion past its expiry.
	ErrIDTokenExpired = errors.New("id token has expired")
)

// OAuthUser represents the verified identity returned by an OAuth provider.
type OAuthUser struct {
	ID        string              // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email     string              // User's email address
	Name      string              // User's display name
	AvatarURL string              // URL to user's profile picture
	Provider  entity.AuthProvider // The OAuth provider
}

// OAuthAuthService defines the interface for OAuth identity verification.
// The workflow trusts its output but does not implement it.
type OAuthAuthService interface {
	// VerifyIDToken verifies an OAuth ID token and returns the verified identity.
	// This is used for Google Sign-In where the client sends an ID token directly.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)

	// GetProvider returns the OAuth provider type.
	GetProvider() entity.AuthProvider
}
