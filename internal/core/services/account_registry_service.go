package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/fin_books_app/internal/apperrors"
	"github.com/finbooks/fin_books_app/internal/core/domain"
	portsrepo "github.com/finbooks/fin_books_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/fin_books_app/internal/core/ports/services"
	"github.com/finbooks/fin_books_app/internal/dto"
	"github.com/finbooks/fin_books_app/internal/middleware"
)

// accountRegistry implements the chart-of-accounts registry. It keeps a
// process-wide in-memory index by id and code, mirroring the persisted rows.
// The store is the source of truth; the index is rebuilt from it at startup
// and refreshed after posting mutates balances.
type accountRegistry struct {
	accountRepo portsrepo.AccountRepository

	mu     sync.RWMutex
	byID   map[string]domain.Account
	byCode map[string]string // code -> account id
}

// NewAccountRegistry creates a new chart-of-accounts registry.
func NewAccountRegistry(accountRepo portsrepo.AccountRepository) portssvc.AccountRegistrySvc {
	return &accountRegistry{
		accountRepo: accountRepo,
		byID:        make(map[string]domain.Account),
		byCode:      make(map[string]string),
	}
}

// Ensure accountRegistry implements the registry facade
var _ portssvc.AccountRegistrySvc = (*accountRegistry)(nil)

// Rebuild reloads the full index from the store. Called once at startup.
func (r *accountRegistry) Rebuild(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := r.accountRepo.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts for registry rebuild: %w", err)
	}

	byID := make(map[string]domain.Account, len(accounts))
	byCode := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
		byCode[acc.Code] = acc.AccountID
	}

	r.mu.Lock()
	r.byID = byID
	r.byCode = byCode
	r.mu.Unlock()

	logger.Info("Account registry rebuilt", slog.Int("account_count", len(accounts)))
	return nil
}

// Refresh re-mirrors the given accounts from the store into the index. The
// posting engine calls this after applying balance deltas.
func (r *accountRegistry) Refresh(ctx context.Context, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}

	accounts, err := r.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to refresh registry accounts: %w", err)
	}

	r.mu.Lock()
	for id, acc := range accounts {
		r.byID[id] = acc
		r.byCode[acc.Code] = id
	}
	r.mu.Unlock()
	return nil
}

// CreateAccount validates and persists a new account, then indexes it. A code
// collision fails with apperrors.ErrDuplicateCode without touching the index.
func (r *accountRegistry) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Code:           req.Code,
		Name:           req.Name,
		AccountType:    req.AccountType,
		NormalSide:     req.NormalSide,
		IsHeader:       req.IsHeader,
		IsActive:       true,
		Description:    req.Description,
		OpeningBalance: req.OpeningBalance.Round(2),
		CurrentBalance: req.OpeningBalance.Round(2),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.ParentAccountID != nil {
		account.ParentAccountID = *req.ParentAccountID
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if account.ParentAccountID != "" {
		if _, err := r.GetAccountByID(ctx, account.ParentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, account.ParentAccountID)
			}
			return nil, err
		}
	}

	r.mu.RLock()
	_, codeTaken := r.byCode[account.Code]
	r.mu.RUnlock()
	if codeTaken {
		return nil, fmt.Errorf("%w: code %q", apperrors.ErrDuplicateCode, account.Code)
	}

	if err := r.accountRepo.SaveAccount(ctx, account); err != nil {
		// The unique index on code is the authoritative collision check; the
		// in-memory probe above only catches collisions already indexed.
		if errors.Is(err, apperrors.ErrDuplicateCode) {
			return nil, fmt.Errorf("%w: code %q", apperrors.ErrDuplicateCode, account.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", account.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	r.mu.Lock()
	r.byID[account.AccountID] = account
	r.byCode[account.Code] = account.AccountID
	r.mu.Unlock()

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID returns the indexed account. On an index miss it consults the
// store and backfills, so rows created before the last rebuild are still
// reachable.
func (r *accountRegistry) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	acc, ok := r.byID[accountID]
	r.mu.RUnlock()
	if ok {
		return &acc, nil
	}

	stored, err := r.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.byID[stored.AccountID] = *stored
	r.byCode[stored.Code] = stored.AccountID
	r.mu.Unlock()
	return stored, nil
}

// GetAccountByCode returns the indexed account by its unique code.
func (r *accountRegistry) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	r.mu.RLock()
	id, ok := r.byCode[code]
	var acc domain.Account
	if ok {
		acc = r.byID[id]
	}
	r.mu.RUnlock()
	if ok {
		return &acc, nil
	}

	stored, err := r.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.byID[stored.AccountID] = *stored
	r.byCode[stored.Code] = stored.AccountID
	r.mu.Unlock()
	return stored, nil
}

// ListAccountsByType returns indexed accounts of the given type, ordered by
// code for stable output.
func (r *accountRegistry) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	if !domain.ValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}

	r.mu.RLock()
	accounts := make([]domain.Account, 0)
	for _, acc := range r.byID {
		if acc.AccountType == accountType {
			accounts = append(accounts, acc)
		}
	}
	r.mu.RUnlock()

	sortAccountsByCode(accounts)
	return accounts, nil
}

// ListActiveLeafAccounts returns active, non-header accounts ordered by code.
// These are the accounts balance and statement queries aggregate over.
func (r *accountRegistry) ListActiveLeafAccounts(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	accounts := make([]domain.Account, 0)
	for _, acc := range r.byID {
		if acc.IsActive && !acc.IsHeader {
			accounts = append(accounts, acc)
		}
	}
	r.mu.RUnlock()

	sortAccountsByCode(accounts)
	return accounts, nil
}

func sortAccountsByCode(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Code < accounts[j].Code
	})
}
