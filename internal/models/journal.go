package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a journal entry header row. EntryNumber is the
// user-visible JE-<REF3>-<SEQ>-<YYYYMM> identifier and is unique.
type JournalEntry struct {
	EntryID       string     `db:"entry_id"`
	EntryNumber   string     `db:"entry_number"`
	EntryDate     time.Time  `db:"entry_date"`
	ReferenceType string     `db:"reference_type"`
	ReferenceID   string     `db:"reference_id"` // Nullable
	Description   string     `db:"description"`
	Notes         string     `db:"notes"` // Nullable
	IsPosted      bool       `db:"is_posted"`
	PostedDate    *time.Time `db:"posted_date"` // Nullable
	PostedBy      string     `db:"posted_by"`   // Nullable
	CreatedAt     time.Time  `db:"created_at"`
	CreatedBy     string     `db:"created_by"`
	LastUpdatedAt time.Time  `db:"last_updated_at"`
	LastUpdatedBy string     `db:"last_updated_by"`
}

// JournalLine represents a single line row of a journal entry. LineNo keeps
// insertion order for display. Account code and name are denormalized
// snapshots taken at entry creation.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	LineNo       int             `db:"line_no"`
	AccountID    string          `db:"account_id"`
	AccountCode  string          `db:"account_code"`
	AccountName  string          `db:"account_name"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"` // Nullable
}
