package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/fin_books_app/internal/core/domain"
	portsrepo "github.com/finbooks/fin_books_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/fin_books_app/internal/core/ports/services"
	"github.com/finbooks/fin_books_app/internal/middleware"
	"github.com/finbooks/fin_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the balance query engine. It reads persisted
// account state directly so reports always observe committed balances, not
// the registry cache.
type reportingService struct {
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new balance query engine.
func NewReportingService(accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvc {
	return &reportingService{
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

// Ensure reportingService implements the reporting facade
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// GetAccountBalance returns the raw signed current balance: the sum of all
// posted debit-minus-credit deltas ever applied to the account.
func (s *reportingService) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.CurrentBalance, nil
}

// GetTrialBalance lists every active leaf account with its raw balance
// translated into the debit/credit display pair, plus ledger-wide totals.
// For any set of entries created exclusively through the posting engine the
// two totals agree within tolerance; that is the ledger's central global
// invariant.
func (s *reportingService) GetTrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListActiveLeafAccounts(ctx)
	if err != nil {
		logger.Error("Failed to retrieve accounts for trial balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		Rows:         make([]domain.TrialBalanceRow, 0, len(accounts)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, acc := range accounts {
		debit, credit := accounting.DisplayColumns(acc.NormalSide, acc.CurrentBalance)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
		report.TotalDebits = report.TotalDebits.Add(debit)
		report.TotalCredits = report.TotalCredits.Add(credit)
	}
	report.IsBalanced = accounting.WithinTolerance(report.TotalDebits, report.TotalCredits)

	logger.Debug("Trial balance generated",
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// GetFinancialPosition sums raw balances by Asset / Liability / Equity. No
// display translation is applied; the raw accumulation convention means a
// credit-heavy liability account carries a negative raw balance.
func (s *reportingService) GetFinancialPosition(ctx context.Context) (*domain.FinancialPositionReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListActiveLeafAccounts(ctx)
	if err != nil {
		logger.Error("Failed to retrieve accounts for financial position", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve financial position data: %w", err)
	}

	report := &domain.FinancialPositionReport{
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
		Equity:      decimal.Zero,
	}
	for _, acc := range accounts {
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = report.Assets.Add(acc.CurrentBalance)
		case domain.Liability:
			report.Liabilities = report.Liabilities.Add(acc.CurrentBalance)
		case domain.Equity:
			report.Equity = report.Equity.Add(acc.CurrentBalance)
		}
	}
	report.IsBalanced = accounting.WithinTolerance(report.Assets, report.Liabilities.Add(report.Equity))

	logger.Debug("Financial position generated", slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// GetIncomeStatement totals Revenue and Expense activity over posted entries
// within [from, to]. The to bound arrives at day granularity while entry
// dates are full timestamps, so the window is widened to the start of the
// following day; entries posted any time on the to day are included. The
// totals sum debit+credit magnitudes per line rather than a net signed delta,
// matching the legacy ledger reports; accounts touched on both sides get
// double-counted. Raised with the accounting owners, not corrected here.
func (s *reportingService) GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	revenues, expenses, err := s.reportingRepo.GetIncomeStatementData(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		logger.Error("Failed to retrieve income statement data",
			slog.String("error", err.Error()),
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	report := &domain.IncomeStatementReport{
		TotalRevenues: revenues,
		TotalExpenses: expenses,
		NetIncome:     revenues.Sub(expenses),
	}

	logger.Debug("Income statement generated",
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)))
	return report, nil
}
