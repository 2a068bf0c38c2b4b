package middleware

import (
	"strings"

	domainerrors "github.com/VaibhavPTM/resort-sas-project/internal/domain/errors"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/service"
	"github.com/VaibhavPTM/resort-sas-project/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyAccount   = "account"
	ContextKeyAccountID = "accountID"
)

// tokenCookieName is the fallback credential location for browser clients.
const tokenCookieName = "token"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	authUC   usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, authUC: authUC}
}

// Authenticate validates the access token and loads the live account behind
// it, so a deleted or deactivated account is rejected even while its tokens
// are still unexpired.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return domainerrors.ErrAuthenticationRequired.WrapMessage("no credential on request")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				return domainerrors.ErrTokenExpired.WrapMessage("access token expired")
			}

			return domainerrors.ErrTokenInvalid.WrapMessage("access token rejected")
		}

		// Refresh tokens are not a session credential.
		if claims.Type != service.TokenTypeAccess {
			return domainerrors.ErrTokenInvalid.WrapMessage("token type is not access")
		}

		account, err := m.authUC.CurrentSession(c.Request().Context(), claims.AccountID)
		if err != nil {
			return err
		}

		c.Set(ContextKeyAccount, account)
		c.Set(ContextKeyAccountID, account.ID)

		return next(c)
	}
}

// extractToken reads the credential from the Authorization header, falling
// back to the token cookie. The header wins when both are present.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return strings.TrimSpace(tokenString)
		}

		return ""
	}

	cookie, err := c.Cookie(tokenCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	return cookie.Value
}

// AccountID returns the authenticated account's ID set by Authenticate.
func AccountID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyAccountID).(uuid.UUID)

	return id, ok
}
