package services

import (
	"context"
	"time"

	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvc is the balance query engine: trial balance, grouped balances by
// account type, and period-bounded statement totals. Read-only.
type ReportingSvc interface {
	// GetAccountBalance returns the raw signed current balance of an account.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// GetTrialBalance lists every active leaf account with its debit/credit
	// display columns and ledger-wide totals.
	GetTrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error)

	// GetFinancialPosition sums raw balances by Asset/Liability/Equity.
	GetFinancialPosition(ctx context.Context) (*domain.FinancialPositionReport, error)

	// GetIncomeStatement totals Revenue and Expense activity over posted
	// entries whose date falls within [from, to].
	GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)
}
