package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failure modes. Verification is stateless: there is no
// revocation list, so a compromised signing secret invalidates every
// outstanding token at once. That is the accepted tradeoff of this design.
var (
	// ErrTokenInvalid is returned for malformed tokens or bad signatures.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired is returned for well-signed tokens past their expiry.
	ErrTokenExpired = errors.New("token has expired")
)

// Token kinds carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	AccountID uuid.UUID `json:"-"`
	Type      string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token bound to an account.
	GenerateTokens(accountID uuid.UUID) (accessToken string, refreshToken string, err error)

	// ValidateToken checks a token string and returns its claims, failing
	// with ErrTokenInvalid or ErrTokenExpired.
	ValidateToken(tokenString string) (*Claims, error)
}
