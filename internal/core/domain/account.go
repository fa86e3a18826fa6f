package domain

import (
	"fmt"
	"strings"

	"github.com/finbooks/fin_books_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the side on which an account's balance conventionally increases.
type NormalSide string

const (
	DebitSide  NormalSide = "DEBIT"
	CreditSide NormalSide = "CREDIT"
)

// ValidAccountType reports whether t is one of the five closed account kinds.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// ValidNormalSide reports whether s is DEBIT or CREDIT.
func ValidNormalSide(s NormalSide) bool {
	return s == DebitSide || s == CreditSide
}

// Account represents a single account in the chart of accounts.
// CurrentBalance is a raw signed accumulation of posted debit-minus-credit
// deltas and is mutated only by the posting engine, never directly.
type Account struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	NormalSide      NormalSide      `json:"normalSide"`
	ParentAccountID string          `json:"parentAccountID"` // empty when root
	IsHeader        bool            `json:"isHeader"`        // aggregation only, never posted to
	IsActive        bool            `json:"isActive"`
	IsLocked        bool            `json:"isLocked"`
	Description     string          `json:"description"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// Validate checks the construction invariants for an account.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Code) == "" {
		return fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !ValidAccountType(a.AccountType) {
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, a.AccountType)
	}
	if !ValidNormalSide(a.NormalSide) {
		return fmt.Errorf("%w: unknown normal side %q", apperrors.ErrValidation, a.NormalSide)
	}
	return nil
}

// IsPostable reports whether journal lines may reference this account.
// Header accounts exist for aggregation only.
func (a *Account) IsPostable() bool {
	return a.IsActive && !a.IsHeader && !a.IsLocked
}
