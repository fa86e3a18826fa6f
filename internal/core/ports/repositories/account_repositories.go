package repositories

import (
	"context"
	"time"

	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves a single account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account row, used to rebuild the in-memory
	// registry index at startup.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountsByType retrieves accounts of the given type.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// ListActiveLeafAccounts retrieves active, non-header accounts; these are
	// the rows balance and statement queries aggregate over.
	ListActiveLeafAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
// Balance columns are written only through the balance updater, inside the
// posting transaction.
type AccountWriter interface {
	// SaveAccount persists a new account row.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountBalanceUpdater defines the balance mutation operations used by the
// posting transaction. Both methods must be called with the posting engine's
// open transaction.
type AccountBalanceUpdater interface {
	// FindAccountsByIDsForUpdate retrieves accounts by ID and locks the rows
	// FOR UPDATE within tx.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx adds each raw signed delta to the referenced
	// account's current balance within tx.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, updatedBy string, now time.Time) error
}

// AccountRepository combines all account repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
	AccountBalanceUpdater
}
