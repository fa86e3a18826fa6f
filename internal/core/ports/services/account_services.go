package services

import (
	"context"

	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/finbooks/fin_books_app/internal/dto"
)

// AccountRegistrySvc is the chart-of-accounts registry: account identity, the
// type taxonomy, and the process-wide in-memory index by id and code. The
// persisted rows are the source of truth; the index is a cache rebuilt from
// the store at startup.
type AccountRegistrySvc interface {
	// Rebuild reloads the in-memory index from the store.
	Rebuild(ctx context.Context) error

	// Refresh re-mirrors the given accounts from the store into the index,
	// called by the posting engine after balances change.
	Refresh(ctx context.Context, accountIDs []string) error

	// CreateAccount validates, persists, and indexes a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID returns the indexed account or apperrors.ErrNotFound.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode returns the indexed account or apperrors.ErrNotFound.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccountsByType returns indexed accounts of the given type.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// ListActiveLeafAccounts returns active, non-header accounts.
	ListActiveLeafAccounts(ctx context.Context) ([]domain.Account, error)
}
