// Package memory provides an in-memory AccountRepository. It backs unit and
// handler tests and mirrors the PostgreSQL implementation's contract,
// including atomic uniqueness enforcement.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/repository"

	"github.com/google/uuid"
)

// AccountRepository is a mutex-guarded in-memory account store.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*entity.Account
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[uuid.UUID]*entity.Account),
	}
}

// FindByID retrieves an account by ID with the password hash stripped.
func (repo *AccountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	account, ok := repo.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account.Sanitized(), nil
}

// FindByEmail retrieves an account by email, including the password hash.
func (repo *AccountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, account := range repo.accounts {
		if account.Email == email {
			clone := *account

			return &clone, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

// FindByExternalIDOrEmail retrieves an account matching either key,
// preferring the external-ID match.
func (repo *AccountRepository) FindByExternalIDOrEmail(_ context.Context, externalID, email string) (*entity.Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var emailMatch *entity.Account
	for _, account := range repo.accounts {
		if externalID != "" && account.ExternalID == externalID {
			clone := *account

			return &clone, nil
		}
		if account.Email == email {
			emailMatch = account
		}
	}

	if emailMatch != nil {
		clone := *emailMatch

		return &clone, nil
	}

	return nil, repository.ErrAccountNotFound
}

// Create stores a new account, enforcing email and external-ID uniqueness
// under the lock the way the database's unique indexes do.
func (repo *AccountRepository) Create(_ context.Context, account *entity.Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.accounts {
		if existing.Email == account.Email {
			return repository.ErrDuplicateAccount
		}
		if account.ExternalID != "" && existing.ExternalID == account.ExternalID {
			return repository.ErrDuplicateAccount
		}
	}

	now := time.Now()
	account.ID = uuid.New()
	account.CreatedAt = now
	account.UpdatedAt = now

	clone := *account
	repo.accounts[account.ID] = &clone

	return nil
}

// Update applies the mutable fields of the given account to the stored record.
func (repo *AccountRepository) Update(_ context.Context, account *entity.Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.accounts[account.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}

	if account.ExternalID != "" {
		for _, existing := range repo.accounts {
			if existing.ID != account.ID && existing.ExternalID == account.ExternalID {
				return repository.ErrDuplicateAccount
			}
		}
	}

	stored.ExternalID = account.ExternalID
	stored.Name = account.Name
	stored.AvatarURL = account.AvatarURL
	stored.UpdatedAt = time.Now()
	account.UpdatedAt = stored.UpdatedAt

	return nil
}

// Deactivate flips isActive off; it models the out-of-band administrative
// action so tests can exercise deactivated-account behavior.
func (repo *AccountRepository) Deactivate(id uuid.UUID) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if account, ok := repo.accounts[id]; ok {
		account.IsActive = false
	}
}

// Len reports the number of stored accounts.
func (repo *AccountRepository) Len() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return len(repo.accounts)
}
