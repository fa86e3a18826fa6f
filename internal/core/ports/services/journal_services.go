package services

import (
	"context"

	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/finbooks/fin_books_app/internal/dto"
)

// PostingSvc is the posting engine: it orchestrates entry creation,
// validation, posting, and balance mutation. It is the only writer of account
// balances.
type PostingSvc interface {
	// CreateJournalEntry validates the candidate entry and persists the header
	// and lines as one transaction, unposted. Returns apperrors.ErrValidation
	// when the entry is unbalanced or malformed.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetJournalEntryByID retrieves an entry with its lines.
	GetJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a paginated list of entry headers.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// PostJournalEntry atomically applies every line's debit-minus-credit
	// delta to its account's balance and marks the entry posted. Returns
	// apperrors.ErrState when the entry is already posted, has fewer than two
	// lines, or is unbalanced.
	PostJournalEntry(ctx context.Context, entryID string, postedBy string) (*domain.JournalEntry, error)

	// UnpostJournalEntry flips the posted flag back without reversing the
	// balance deltas already applied. Post a reversing entry to correct
	// balances.
	UnpostJournalEntry(ctx context.Context, entryID string, updatedBy string) (*domain.JournalEntry, error)
}
