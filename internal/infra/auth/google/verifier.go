// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/VaibhavPTM/resort-sas-project/config"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/service"

	"github.com/pkg/errors"
)

// IDTokenClaims represents the claims in a Google ID token.
type IDTokenClaims struct {
	Iss           string `json:"iss"`            // Issuer
	Sub           string `json:"sub"`            // Subject (user ID)
	Aud           string `json:"aud"`            // Audience (client ID)
	Exp           int64  `json:"exp"`            // Expiration time
	Iat           int64  `json:"iat"`            // Issued at
	Email         string `json:"email"`          // User's email
	EmailVerified bool   `json:"email_verified"` // Email verification status
	Name          string `json:"name"`           // User's full name
	Picture       string `json:"picture"`        // User's profile picture
}

// Verifier implements service.OAuthAuthService for Google ID tokens.
type Verifier struct {
	clientID string
	logger   *slog.Logger
}

// NewVerifier creates a new Google ID token verifier. A missing client ID is
// not an error at construction time; verification then fails with
// service.ErrOAuthNotConfigured so the workflow can answer 503.
func NewVerifier(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	clientID := ""
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &Verifier{
		clientID: clientID,
		logger:   logger,
	}
}

// VerifyIDToken implements service.OAuthAuthService.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	if v.clientID == "" {
		return nil, service.ErrOAuthNotConfigured
	}

	claims, err := v.parseIDToken(idToken)
	if err != nil {
		v.logger.Warn("Failed to parse Google ID token", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid ID token")
	}

	if err := v.verifyTokenClaims(claims); err != nil {
		v.logger.Warn("Google ID token verification failed", slog.Any("error", err))

		return nil, err
	}

	oauthUser := &service.OAuthUser{
		ID:        claims.Sub,
		Email:     claims.Email,
		Name:      claims.Name,
		AvatarURL: claims.Picture,
		Provider:  entity.ProviderGoogle,
	}

	v.logger.Info("Google ID token verified",
		slog.String("externalID", oauthUser.ID),
		slog.String("email", oauthUser.Email))

	return oauthUser, nil
}

// GetProvider returns the OAuth provider type.
func (v *Verifier) GetProvider() entity.AuthProvider {
	return entity.ProviderGoogle
}

// parseIDToken extracts the claims from the JWT payload.
func (v *Verifier) parseIDToken(token string) (*IDTokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid JWT format")
	}

	decoded, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode token payload")
	}

	var claims IDTokenClaims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, errors.Wrap(err, "failed to parse token claims")
	}

	return &claims, nil
}

// verifyTokenClaims checks issuer, audience, expiry, and email verification.
func (v *Verifier) verifyTokenClaims(claims *IDTokenClaims) error {
	if claims.Iss != "https://accounts.google.com" && claims.Iss != "accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", claims.Iss)
	}

	if claims.Aud != v.clientID {
		return errors.Errorf("invalid audience: expected %s, got %s", v.clientID, claims.Aud)
	}

	now := time.Now().Unix()
	if claims.Exp < now {
		return errors.Wrapf(service.ErrIDTokenExpired, "expired at %d, current time %d", claims.Exp, now)
	}

	if !claims.EmailVerified {
		return errors.New("email not verified")
	}

	return nil
}
