package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/finbooks/fin_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for statement queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetIncomeStatementData sums debit+credit magnitudes over posted lines whose
// parent entry date falls within [from, toExclusive), grouped into Revenue and
// Expense totals. Entry dates are full timestamps, so the caller supplies an
// exclusive upper bound rather than a day-granularity one. The magnitude sum
// (not a net signed delta) keeps the statement matching the legacy ledger's
// aggregation.
func (r *PgxReportingRepository) GetIncomeStatementData(ctx context.Context, from, toExclusive time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(l.debit_amount + l.credit_amount) FILTER (WHERE a.account_type = 'REVENUE'), 0) AS revenues,
			COALESCE(SUM(l.debit_amount + l.credit_amount) FILTER (WHERE a.account_type = 'EXPENSE'), 0) AS expenses
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.is_posted
		  AND e.entry_date >= $1
		  AND e.entry_date < $2
		  AND a.account_type IN ('REVENUE', 'EXPENSE');
	`
	var revenues, expenses decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, from, toExclusive).Scan(&revenues, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query income statement data: %w", err)
	}
	return revenues, expenses, nil
}
