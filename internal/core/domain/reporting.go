package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is a single account row of a trial balance report. The raw
// signed balance is translated into a debit/credit display pair by the
// reporting service.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every active leaf account with its display columns
// and the ledger-wide totals.
type TrialBalanceReport struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
}

// FinancialPositionReport is the balance-sheet view: raw balances summed by
// Asset / Liability / Equity account type.
type FinancialPositionReport struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
	IsBalanced  bool            `json:"isBalanced"`
}

// IncomeStatementReport totals Revenue and Expense activity over a period of
// posted entries.
type IncomeStatementReport struct {
	TotalRevenues decimal.Decimal `json:"totalRevenues"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}
