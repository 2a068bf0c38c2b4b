// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/VaibhavPTM/resort-sas-project/config"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/service"
	"github.com/VaibhavPTM/resort-sas-project/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens share one HMAC secret; rotating it invalidates
// every outstanding token, which is the accepted revocation story here.
type jwtService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:     cfg.JWT.Secret,
		accessTTL:  cfg.JWT.AccessExpiry,
		refreshTTL: cfg.JWT.RefreshExpiry,
	}, nil
}

// GenerateTokens creates a new access token and refresh token bound to an account.
func (s *jwtService) GenerateTokens(accountID uuid.UUID) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.generateToken(accountID, s.accessTTL, service.TokenTypeAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.generateToken(accountID, s.refreshTTL, service.TokenTypeRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateToken checks the validity of a token string and returns its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}
	if !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenInvalid, "subject is not a valid account id")
	}
	claims.AccountID = accountID

	return claims, nil
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(accountID uuid.UUID, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}
