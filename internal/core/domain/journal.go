package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/finbooks/fin_books_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the rounding slack allowed when comparing debit and
// credit totals. Monetary values carry a 2-digit scale, so anything below a
// cent is treated as equal.
var BalanceTolerance = decimal.New(1, -2) // 0.01

// JournalLine is a single line of a journal entry affecting one account.
// Exactly one of DebitAmount or CreditAmount is strictly positive; this is
// enforced at construction so a malformed line can never enter an entry.
// A line is owned exclusively by its parent entry.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"` // denormalized snapshot for display
	AccountName  string          `json:"accountName"` // denormalized snapshot for display
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// NewJournalLine constructs a journal line, enforcing balance-side exclusivity:
// exactly one of debit/credit must be strictly positive. Amounts are rounded to
// the 2-digit money scale.
func NewJournalLine(accountID, accountCode, accountName string, debit, credit decimal.Decimal, description string) (JournalLine, error) {
	if accountID == "" {
		return JournalLine{}, fmt.Errorf("%w: journal line requires an account", apperrors.ErrValidation)
	}
	debitPositive := debit.IsPositive()
	creditPositive := credit.IsPositive()
	if debitPositive && creditPositive {
		return JournalLine{}, fmt.Errorf("%w: journal line cannot carry both a debit and a credit amount", apperrors.ErrValidation)
	}
	if !debitPositive && !creditPositive {
		return JournalLine{}, fmt.Errorf("%w: journal line must carry a positive debit or credit amount", apperrors.ErrValidation)
	}
	return JournalLine{
		AccountID:    accountID,
		AccountCode:  accountCode,
		AccountName:  accountName,
		DebitAmount:  debit.Round(2),
		CreditAmount: credit.Round(2),
		Description:  description,
	}, nil
}

// Delta is the raw signed balance effect of the line: debit minus credit,
// independent of the account's normal side.
func (l JournalLine) Delta() decimal.Decimal {
	return l.DebitAmount.Sub(l.CreditAmount)
}

// JournalEntry is a single financial event composed of journal lines.
// Line order is insertion order; it matters for display only.
type JournalEntry struct {
	EntryID       string        `json:"entryID"`
	EntryNumber   string        `json:"entryNumber"`
	EntryDate     time.Time     `json:"entryDate"`
	ReferenceType string        `json:"referenceType"` // opaque collaborator link, e.g. "Sales"
	ReferenceID   string        `json:"referenceID"`
	Description   string        `json:"description"`
	Notes         string        `json:"notes"`
	Lines         []JournalLine `json:"lines"`
	IsPosted      bool          `json:"isPosted"`
	PostedDate    *time.Time    `json:"postedDate"`
	PostedBy      string        `json:"postedBy"`
	AuditFields
}

// AddLine appends a line to the entry. Lines must come from NewJournalLine;
// AddLine re-checks the exclusivity precondition so a hand-built zero line is
// rejected here too.
func (e *JournalEntry) AddLine(line JournalLine) error {
	debitPositive := line.DebitAmount.IsPositive()
	creditPositive := line.CreditAmount.IsPositive()
	if debitPositive == creditPositive {
		return fmt.Errorf("%w: journal line must carry exactly one positive side", apperrors.ErrValidation)
	}
	e.Lines = append(e.Lines, line)
	return nil
}

// TotalDebits sums the debit amounts over all lines.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredits sums the credit amounts over all lines.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// IsBalanced reports whether debit and credit totals agree within the
// 0.01 tolerance.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Sub(e.TotalCredits()).Abs().LessThan(BalanceTolerance)
}

// CanPost reports whether the entry is eligible for posting: not yet posted,
// at least two lines, and balanced.
func (e *JournalEntry) CanPost() bool {
	return !e.IsPosted && len(e.Lines) >= 2 && e.IsBalanced()
}

// FormatEntryNumber builds the user-visible entry number
// JE-<REF3>-<SEQ>-<YYYYMM>. The prefix is the first three characters of the
// uppercased reference type; reference types are free-form collaborator input,
// so the truncation counts runes, not bytes. seq is the count of existing
// entries with the same reference type plus one; the count-and-increment
// scheme is not safe under concurrent creators of the same reference type,
// which is an accepted limitation of the single-writer deployment.
func FormatEntryNumber(referenceType string, seq int, at time.Time) string {
	ref := []rune(strings.ToUpper(referenceType))
	if len(ref) > 3 {
		ref = ref[:3]
	}
	return fmt.Sprintf("JE-%s-%04d-%s", string(ref), seq, at.Format("200601"))
}
