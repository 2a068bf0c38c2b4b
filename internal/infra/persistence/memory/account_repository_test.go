package memory

import (
	"context"
	"testing"

	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localAccount(email string) *entity.Account {
	return &entity.Account{
		Email:        email,
		PasswordHash: "$2a$04$fakehashfakehashfakehash",
		Name:         "Test User",
		AuthProvider: entity.ProviderLocal,
		IsActive:     true,
	}
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account := localAccount("guest@example.com")
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.False(t, account.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)
	assert.NotEmpty(t, byEmail.PasswordHash, "email lookup serves the login flow and must include the hash")

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Email, byID.Email)
	assert.Empty(t, byID.PasswordHash, "ID lookup must never expose the hash")
}

func TestAccountRepository_FindMissing(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = repo.FindByExternalIDOrEmail(ctx, "no-such-sub", "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, localAccount("guest@example.com")))

	err := repo.Create(ctx, localAccount("guest@example.com"))
	assert.ErrorIs(t, err, repository.ErrDuplicateAccount)
	assert.Equal(t, 1, repo.Len())
}

func TestAccountRepository_DuplicateExternalID(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	first := localAccount("one@example.com")
	first.ExternalID = "google-sub-1"
	require.NoError(t, repo.Create(ctx, first))

	second := localAccount("two@example.com")
	second.ExternalID = "google-sub-1"
	assert.ErrorIs(t, repo.Create(ctx, second), repository.ErrDuplicateAccount)

	// Accounts without an external ID never collide with each other.
	require.NoError(t, repo.Create(ctx, localAccount("three@example.com")))
	require.NoError(t, repo.Create(ctx, localAccount("four@example.com")))
}

func TestAccountRepository_FindByExternalIDOrEmail(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	linked := localAccount("linked@example.com")
	linked.ExternalID = "google-sub-1"
	require.NoError(t, repo.Create(ctx, linked))

	unlinked := localAccount("unlinked@example.com")
	require.NoError(t, repo.Create(ctx, unlinked))

	// External ID wins even when the email belongs to another account.
	found, err := repo.FindByExternalIDOrEmail(ctx, "google-sub-1", "unlinked@example.com")
	require.NoError(t, err)
	assert.Equal(t, linked.ID, found.ID)

	// Email alone still matches.
	found, err = repo.FindByExternalIDOrEmail(ctx, "unknown-sub", "unlinked@example.com")
	require.NoError(t, err)
	assert.Equal(t, unlinked.ID, found.ID)
}

func TestAccountRepository_Update(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account := localAccount("guest@example.com")
	require.NoError(t, repo.Create(ctx, account))

	account.ExternalID = "google-sub-1"
	account.AvatarURL = "https://example.com/avatar.png"
	require.NoError(t, repo.Update(ctx, account))

	stored, err := repo.FindByEmail(ctx, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", stored.ExternalID)
	assert.Equal(t, "https://example.com/avatar.png", stored.AvatarURL)

	missing := localAccount("ghost@example.com")
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrAccountNotFound)
}

func TestAccountRepository_Update_DuplicateExternalID(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	linked := localAccount("linked@example.com")
	linked.ExternalID = "google-sub-1"
	require.NoError(t, repo.Create(ctx, linked))

	other := localAccount("other@example.com")
	require.NoError(t, repo.Create(ctx, other))

	other.ExternalID = "google-sub-1"
	assert.ErrorIs(t, repo.Update(ctx, other), repository.ErrDuplicateAccount)
}

func TestAccountRepository_ReturnsClones(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account := localAccount("guest@example.com")
	require.NoError(t, repo.Create(ctx, account))

	found, err := repo.FindByEmail(ctx, "guest@example.com")
	require.NoError(t, err)
	found.Name = "Mutated"

	again, err := repo.FindByEmail(ctx, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Test User", again.Name, "mutating a returned account must not touch the store")
}
