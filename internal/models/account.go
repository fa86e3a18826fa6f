package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors the closed domain taxonomy at the persistence boundary.
type AccountType string

// NormalSide mirrors the domain debit/credit side at the persistence boundary.
type NormalSide string

// Account represents a chart-of-accounts row.
// Monetary columns are NUMERIC(20,2); never floating point.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	NormalSide      NormalSide      `db:"normal_side"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	IsHeader        bool            `db:"is_header"`
	IsActive        bool            `db:"is_active"`
	IsLocked        bool            `db:"is_locked"`
	Description     string          `db:"description"`
	OpeningBalance  decimal.Decimal `db:"opening_balance"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
	LastUpdatedAt   time.Time       `db:"last_updated_at"`
	LastUpdatedBy   string          `db:"last_updated_by"`
}
