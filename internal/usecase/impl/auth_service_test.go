package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/VaibhavPTM/resort-sas-project/config"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"
	domainerrors "github.com/VaibhavPTM/resort-sas-project/internal/domain/errors"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/service"
	"github.com/VaibhavPTM/resort-sas-project/internal/infra/auth"
	"github.com/VaibhavPTM/resort-sas-project/internal/infra/persistence/memory"
	"github.com/VaibhavPTM/resort-sas-project/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubOAuthVerifier returns a canned identity or error, standing in for
// Google token verification.
type stubOAuthVerifier struct {
	user *service.OAuthUser
	err  error
}

func (s *stubOAuthVerifier) VerifyIDToken(_ context.Context, _ string) (*service.OAuthUser, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.user, nil
}

func (s *stubOAuthVerifier) GetProvider() entity.AuthProvider {
	return entity.ProviderGoogle
}

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service     usecase.AuthUsecase
	accountRepo *memory.AccountRepository
	tokenSvc    service.TokenService
	oauth       *stubOAuthVerifier
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessExpiry = time.Hour
	cfg.JWT.RefreshExpiry = 24 * time.Hour
	cfg.Auth.BcryptCost = bcrypt.MinCost

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	accountRepo := memory.NewAccountRepository()
	oauth := &stubOAuthVerifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewAuthService(AuthServiceParams{
		AccountRepo:  accountRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenSvc,
		GoogleAuth:   oauth,
		Logger:       logger,
	})

	return authServiceFixtures{
		service:     svc,
		accountRepo: accountRepo,
		tokenSvc:    tokenSvc,
		oauth:       oauth,
	}
}

func googleIdentity() *service.OAuthUser {
	return &service.OAuthUser{
		ID:        "google-sub-1234567890",
		Email:     "guest@example.com",
		Name:      "Guest User",
		AvatarURL: "https://lh3.googleusercontent.com/a/photo",
		Provider:  entity.ProviderGoogle,
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	output, err := fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "Guest@Example.COM",
		Password: "secret123",
		Name:     "Guest User",
	})
	require.NoError(t, err)

	assert.Equal(t, "guest@example.com", output.User.Email, "email must be stored lowercase")
	assert.Equal(t, "Guest User", output.User.Name)
	assert.Equal(t, entity.ProviderLocal, output.User.AuthProvider)
	assert.True(t, output.User.IsActive)
	assert.Empty(t, output.User.PasswordHash, "hash must never leave the workflow")
	assert.NotEqual(t, uuid.Nil, output.User.ID)

	claims, err := fixtures.tokenSvc.ValidateToken(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, output.User.ID, claims.AccountID)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)

	refreshClaims, err := fixtures.tokenSvc.ValidateToken(output.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	_, err := fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "guest@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Same email with different case is the same account.
	_, err = fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "GUEST@example.com",
		Password: "another456",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	assert.Equal(t, 1, fixtures.accountRepo.Len())
}

func TestAuthService_Login_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	_, err := fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "guest@example.com",
		Password: "secret123",
		Name:     "Guest User",
	})
	require.NoError(t, err)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "Guest@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", output.User.Email)
	assert.Empty(t, output.User.PasswordHash)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
}

func TestAuthService_Login_BadCredentialsAreIndistinguishable(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	_, err := fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "guest@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Wrong password on an existing account.
	_, wrongPassErr := fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "guest@example.com",
		Password: "wrong-password",
	})
	require.Error(t, wrongPassErr)
	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)

	// Unknown account. The caller must not be able to tell these apart.
	_, unknownErr := fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	require.Error(t, unknownErr)
	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_GoogleAccountRejected(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.oauth.user = googleIdentity()
	_, err := fixtures.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Credential: "token"})
	require.NoError(t, err)

	_, err = fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "guest@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrWrongAuthProvider)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	output, err := fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "guest@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	fixtures.accountRepo.Deactivate(output.User.ID)

	_, err = fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "guest@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountDeactivated)
}

func TestAuthService_GoogleLogin_CreatesAccount(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.oauth.user = googleIdentity()

	output, err := fixtures.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Credential: "token"})
	require.NoError(t, err)

	assert.Equal(t, "guest@example.com", output.User.Email)
	assert.Equal(t, entity.ProviderGoogle, output.User.AuthProvider)
	assert.Equal(t, "google-sub-1234567890", output.User.ExternalID)
	assert.Equal(t, "Guest User", output.User.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/photo", output.User.AvatarURL)
	assert.True(t, output.User.IsActive)
	assert.NotEmpty(t, output.AccessToken)
}

func TestAuthService_GoogleLogin_LinksExistingLocalAccount(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	signupOutput, err := fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "guest@example.com",
		Password: "secret123",
		Name:     "Chosen Name",
	})
	require.NoError(t, err)

	fixtures.oauth.user = googleIdentity()

	output, err := fixtures.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Credential: "token"})
	require.NoError(t, err)

	// Same account, now linked. The user's chosen name is not overwritten,
	// but the empty avatar is backfilled.
	assert.Equal(t, signupOutput.User.ID, output.User.ID)
	assert.Equal(t, "google-sub-1234567890", output.User.ExternalID)
	assert.Equal(t, entity.ProviderLocal, output.User.AuthProvider, "original provider is preserved")
	assert.Equal(t, "Chosen Name", output.User.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/photo", output.User.AvatarURL)
	assert.Equal(t, 1, fixtures.accountRepo.Len())

	// Password login still works after linking.
	_, err = fixtures.service.Login(ctx, &usecase.LoginInput{
		Email:    "guest@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)
}

func TestAuthService_GoogleLogin_RepeatSignIn(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.oauth.user = googleIdentity()

	first, err := fixtures.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Credential: "token"})
	require.NoError(t, err)

	second, err := fixtures.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Credential: "token"})
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, fixtures.accountRepo.Len())
}

func TestAuthService_GoogleLogin_DeactivatedAccount(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.oauth.user = googleIdentity()

	output, err := fixtures.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Credential: "token"})
	require.NoError(t, err)

	fixtures.accountRepo.Deactivate(output.User.ID)

	_, err = fixtures.service.GoogleLogin(ctx, &usecase.GoogleLoginInput{Credential: "token"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountDeactivated)
}

func TestAuthService_GoogleLogin_VerifierErrors(t *testing.T) {
	tests := []struct {
		name        string
		verifierErr error
		wantErr     error
	}{
		{"not configured", service.ErrOAuthNotConfigured, domainerrors.ErrOAuthNotConfigured},
		{"expired token", service.ErrIDTokenExpired, domainerrors.ErrOAuthTokenExpired},
		{"any other failure", assert.AnError, domainerrors.ErrOAuthTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixtures := createTestAuthService(t)
			fixtures.oauth.err = tt.verifierErr

			_, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{Credential: "token"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_GoogleLogin_MissingEmail(t *testing.T) {
	fixtures := createTestAuthService(t)

	identity := googleIdentity()
	identity.Email = ""
	fixtures.oauth.user = identity

	_, err := fixtures.service.GoogleLogin(context.Background(), &usecase.GoogleLoginInput{Credential: "token"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOAuthEmailMissing)
}

func TestAuthService_CurrentSession(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	output, err := fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "guest@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	account, err := fixtures.service.CurrentSession(ctx, output.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", account.Email)
	assert.Empty(t, account.PasswordHash)
}

func TestAuthService_CurrentSession_MissingAccount(t *testing.T) {
	fixtures := createTestAuthService(t)

	_, err := fixtures.service.CurrentSession(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountGone)
}

func TestAuthService_CurrentSession_DeactivatedAccount(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	output, err := fixtures.service.Signup(ctx, &usecase.SignupInput{
		Email:    "guest@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	fixtures.accountRepo.Deactivate(output.User.ID)

	_, err = fixtures.service.CurrentSession(ctx, output.User.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountDeactivated)
}
