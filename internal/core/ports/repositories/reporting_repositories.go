package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingRepository defines the aggregate queries behind period-bounded
// statements.
type ReportingRepository interface {
	// GetIncomeStatementData sums debit+credit magnitudes over posted lines
	// whose parent entry date falls within the half-open window
	// [from, toExclusive), grouped into Revenue and Expense totals.
	GetIncomeStatementData(ctx context.Context, from, toExclusive time.Time) (revenues, expenses decimal.Decimal, err error)
}
