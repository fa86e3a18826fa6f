package domain_test

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/finbooks/fin_books_app/internal/apperrors"
	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJournalLine_DebitOnly(t *testing.T) {
	line, err := domain.NewJournalLine("acc-1", "1000", "Cash", decimal.NewFromFloat(100.555), decimal.Zero, "opening cash")
	require.NoError(t, err)
	assert.Equal(t, "100.56", line.DebitAmount.StringFixed(2)) // rounded to money scale
	assert.True(t, line.CreditAmount.IsZero())
	assert.Equal(t, "1000", line.AccountCode)
}

func TestNewJournalLine_CreditOnly(t *testing.T) {
	line, err := domain.NewJournalLine("acc-2", "4000", "Sales Revenue", decimal.Zero, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	assert.True(t, line.DebitAmount.IsZero())
	assert.Equal(t, "100.00", line.CreditAmount.StringFixed(2))
}

func TestNewJournalLine_BothSidesRejected(t *testing.T) {
	_, err := domain.NewJournalLine("acc-1", "1000", "Cash", decimal.NewFromInt(50), decimal.NewFromInt(50), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewJournalLine_NeitherSideRejected(t *testing.T) {
	_, err := domain.NewJournalLine("acc-1", "1000", "Cash", decimal.Zero, decimal.Zero, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewJournalLine_NegativeAmountRejected(t *testing.T) {
	_, err := domain.NewJournalLine("acc-1", "1000", "Cash", decimal.NewFromInt(-10), decimal.Zero, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJournalLine_Delta(t *testing.T) {
	debitLine, err := domain.NewJournalLine("acc-1", "1000", "Cash", decimal.NewFromInt(100), decimal.Zero, "")
	require.NoError(t, err)
	assert.Equal(t, "100.00", debitLine.Delta().StringFixed(2))

	creditLine, err := domain.NewJournalLine("acc-2", "4000", "Sales Revenue", decimal.Zero, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	assert.Equal(t, "-100.00", creditLine.Delta().StringFixed(2))
}

func TestJournalEntry_AddLineRejectsHandBuiltZeroLine(t *testing.T) {
	var entry domain.JournalEntry
	err := entry.AddLine(domain.JournalLine{AccountID: "acc-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, entry.Lines)
}

func mustLine(t *testing.T, accountID string, debit, credit decimal.Decimal) domain.JournalLine {
	t.Helper()
	line, err := domain.NewJournalLine(accountID, "code", "name", debit, credit, "")
	require.NoError(t, err)
	return line
}

func TestJournalEntry_TotalsAndBalance(t *testing.T) {
	var entry domain.JournalEntry
	require.NoError(t, entry.AddLine(mustLine(t, "a", decimal.NewFromInt(60), decimal.Zero)))
	require.NoError(t, entry.AddLine(mustLine(t, "b", decimal.NewFromInt(40), decimal.Zero)))
	require.NoError(t, entry.AddLine(mustLine(t, "c", decimal.Zero, decimal.NewFromInt(100))))

	assert.Equal(t, "100.00", entry.TotalDebits().StringFixed(2))
	assert.Equal(t, "100.00", entry.TotalCredits().StringFixed(2))
	assert.True(t, entry.IsBalanced())
	assert.True(t, entry.CanPost())
}

func TestJournalEntry_BalanceTolerance(t *testing.T) {
	var entry domain.JournalEntry
	require.NoError(t, entry.AddLine(mustLine(t, "a", decimal.NewFromFloat(100.00), decimal.Zero)))
	require.NoError(t, entry.AddLine(mustLine(t, "b", decimal.Zero, decimal.NewFromFloat(99.995))))

	// 99.995 rounds to 100.00 at the money scale; difference is zero
	assert.True(t, entry.IsBalanced())

	var off domain.JournalEntry
	require.NoError(t, off.AddLine(mustLine(t, "a", decimal.NewFromFloat(100.00), decimal.Zero)))
	require.NoError(t, off.AddLine(mustLine(t, "b", decimal.Zero, decimal.NewFromFloat(99.98))))

	// A two-cent gap is outside the 0.01 tolerance
	assert.False(t, off.IsBalanced())
	assert.False(t, off.CanPost())
}

func TestJournalEntry_CanPost(t *testing.T) {
	var single domain.JournalEntry
	require.NoError(t, single.AddLine(mustLine(t, "a", decimal.NewFromInt(10), decimal.Zero)))
	assert.False(t, single.CanPost(), "single-line entry must never be postable")

	var posted domain.JournalEntry
	require.NoError(t, posted.AddLine(mustLine(t, "a", decimal.NewFromInt(10), decimal.Zero)))
	require.NoError(t, posted.AddLine(mustLine(t, "b", decimal.Zero, decimal.NewFromInt(10))))
	posted.IsPosted = true
	assert.False(t, posted.CanPost(), "already-posted entry must not be postable again")
}

func TestFormatEntryNumber(t *testing.T) {
	at := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "JE-SAL-0001-202503", domain.FormatEntryNumber("Sales", 1, at))
	assert.Equal(t, "JE-PUR-0042-202503", domain.FormatEntryNumber("Purchase", 42, at))

	// Short reference types keep what they have
	assert.Equal(t, "JE-AR-0007-202503", domain.FormatEntryNumber("ar", 7, at))
}

func TestFormatEntryNumber_MultibyteReferenceType(t *testing.T) {
	at := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	// Reference types are free-form collaborator input; truncation must count
	// runes so multibyte input never yields a broken prefix.
	arabic := domain.FormatEntryNumber("مبيعات", 3, at)
	assert.Equal(t, "JE-مبي-0003-202503", arabic)
	assert.True(t, utf8.ValidString(arabic))

	// Uppercasing can change the rune count (ß expands to SS); truncation
	// applies after uppercasing.
	assert.Equal(t, "JE-GRÖ-0001-202503", domain.FormatEntryNumber("größe", 1, at))
}
