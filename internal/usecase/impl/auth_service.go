// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "github.com/VaibhavPTM/resort-sas-project/internal/delivery/context"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"
	domainerrors "github.com/VaibhavPTM/resort-sas-project/internal/domain/errors"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/repository"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/service"
	"github.com/VaibhavPTM/resort-sas-project/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. Each flow is a single
// terminating request: at most one create or one update hits the store, and
// uniqueness races are resolved by the store's constraints, so there is no
// multi-step transaction to roll back.
type authService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	googleAuth   service.OAuthAuthService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	GoogleAuth   service.OAuthAuthService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		googleAuth:   params.GoogleAuth,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail lowercases and trims an email so lookups and uniqueness are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup orchestrates the registration of a new local account.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	// 1. Reject an already-registered email. The database's unique index is
	// the authority; this lookup only gives the common case a clean error.
	_, err := srv.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrEmailTaken.WrapMessage("signup failed")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}

	// 2. Hash the password; the plaintext never reaches the store.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	newAccount := &entity.Account{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(input.Name),
		AuthProvider: entity.ProviderLocal,
		IsActive:     true,
	}

	if err := srv.accountRepo.Create(ctx, newAccount); err != nil {
		// A concurrent signup with the same email loses the race here.
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return nil, domainerrors.ErrEmailTaken.WrapMessage("signup raced a concurrent registration")
		}

		return nil, errors.Wrap(err, "failed to create account during signup")
	}

	output, err := srv.issueSession(newAccount)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session after signup", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Signup completed", slog.Any("accountID", newAccount.ID))

	return output, nil
}

// Login orchestrates a password login.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	// 1. Load the account with its hash. A missing account and a wrong
	// password must be indistinguishable to the caller.
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find account for login")
	}

	// 2. Google-created accounts have no usable password.
	if account.AuthProvider == entity.ProviderGoogle {
		return nil, domainerrors.ErrWrongAuthProvider.WrapMessage("password login attempted on google account")
	}

	// 3. Verify the password (bcrypt, constant-time).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	// 4. Deactivated accounts fail even with correct credentials.
	if !account.IsActive {
		return nil, domainerrors.ErrAccountDeactivated.WrapMessage("login on deactivated account")
	}

	output, err := srv.issueSession(account)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session after login", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return output, nil
}

// GoogleLogin verifies a Google ID token and reconciles the verified identity
// with the account store: link to an existing local account, refresh an
// already-linked one, or create a new Google-provider account.
func (srv *authService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Handling Google login")

	oauthUser, err := srv.googleAuth.VerifyIDToken(ctx, input.Credential)
	if err != nil {
		return nil, mapOAuthError(err)
	}

	if oauthUser.Email == "" {
		return nil, domainerrors.ErrOAuthEmailMissing.WrapMessage("verified identity has no email")
	}
	email := normalizeEmail(oauthUser.Email)

	account, err := srv.findOrCreateGoogleAccount(ctx, oauthUser, email)
	if err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, domainerrors.ErrAccountDeactivated.WrapMessage("google login on deactivated account")
	}

	output, err := srv.issueSession(account)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session after google login", slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Debug("Google login completed", slog.Any("accountID", account.ID))

	return output, nil
}

// CurrentSession loads the account behind a verified access token.
func (srv *authService) CurrentSession(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountGone.WrapMessage("session account no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load session account")
	}

	if !account.IsActive {
		return nil, domainerrors.ErrAccountDeactivated.WrapMessage("session on deactivated account")
	}

	return account.Sanitized(), nil
}

// findOrCreateGoogleAccount performs the link / backfill / create step of the
// Google flow against a single compound lookup.
func (srv *authService) findOrCreateGoogleAccount(ctx context.Context, oauthUser *service.OAuthUser, email string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByExternalIDOrEmail(ctx, oauthUser.ID, email)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to find account for google login")
	}

	if errors.Is(err, repository.ErrAccountNotFound) {
		return srv.createGoogleAccount(ctx, oauthUser, email)
	}

	if changed := reconcileGoogleProfile(account, oauthUser); changed {
		if err := srv.accountRepo.Update(ctx, account); err != nil {
			return nil, errors.Wrap(err, "failed to update account during google login")
		}
	}

	return account, nil
}

// reconcileGoogleProfile links the external identity and backfills profile
// fields that are currently empty. It reports whether anything changed.
// Linking by matching email alone is a deliberate trust assumption carried
// over from the product's behavior.
func reconcileGoogleProfile(account *entity.Account, oauthUser *service.OAuthUser) bool {
	changed := false

	if account.ExternalID == "" {
		account.ExternalID = oauthUser.ID
		changed = true
	}
	if account.AvatarURL == "" && oauthUser.AvatarURL != "" {
		account.AvatarURL = oauthUser.AvatarURL
		changed = true
	}
	if account.Name == "" && oauthUser.Name != "" {
		account.Name = oauthUser.Name
		changed = true
	}

	return changed
}

func (srv *authService) createGoogleAccount(ctx context.Context, oauthUser *service.OAuthUser, email string) (*entity.Account, error) {
	srv.log(ctx).Info("Google account not found, creating new account", slog.String("email", email))

	newAccount := &entity.Account{
		Email:        email,
		Name:         oauthUser.Name,
		AvatarURL:    oauthUser.AvatarURL,
		AuthProvider: entity.ProviderGoogle,
		ExternalID:   oauthUser.ID,
		IsActive:     true,
	}

	if err := srv.accountRepo.Create(ctx, newAccount); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return nil, domainerrors.ErrEmailTaken.WrapMessage("google signup raced a concurrent registration")
		}

		return nil, errors.Wrap(err, "failed to create account during google login")
	}

	return newAccount, nil
}

// issueSession generates the token pair and strips the hash from the account.
func (srv *authService) issueSession(account *entity.Account) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.AuthOutput{
		User:         account.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// mapOAuthError translates verifier failures into the fixed taxonomy.
func mapOAuthError(err error) error {
	switch {
	case errors.Is(err, service.ErrOAuthNotConfigured):
		return domainerrors.ErrOAuthNotConfigured.WrapMessage("google login unavailable")
	case errors.Is(err, service.ErrIDTokenExpired):
		return domainerrors.ErrOAuthTokenExpired.WrapMessage("google login failed")
	default:
		return domainerrors.ErrOAuthTokenInvalid.WrapMessage(err.Error())
	}
}
