package accounting

import (
	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DisplayColumns translates a raw signed account balance into the trial
// balance debit/credit display pair:
//
//	DEBIT-normal:  debit  = balance  when balance > 0
//	               credit = -balance when balance < 0
//	CREDIT-normal: debit  = -balance when balance < 0
//	               credit = balance  when balance > 0
//
// Note the credit-normal branch maps a negative raw balance to the DEBIT
// column, so a credit-normal account whose raw balance went negative through
// credits shows nothing in the credit column. Counter-intuitive, but reports
// must keep matching the legacy ledger until the accounting owners sign off
// on a change.
func DisplayColumns(side domain.NormalSide, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	debit = decimal.Zero
	credit = decimal.Zero
	switch side {
	case domain.DebitSide:
		if balance.IsPositive() {
			debit = balance
		} else if balance.IsNegative() {
			credit = balance.Neg()
		}
	case domain.CreditSide:
		if balance.IsNegative() {
			debit = balance.Neg()
		} else if balance.IsPositive() {
			credit = balance
		}
	}
	return debit, credit
}

// WithinTolerance reports whether two totals agree within the 0.01 money
// tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(domain.BalanceTolerance)
}
