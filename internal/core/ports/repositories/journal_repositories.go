package repositories

import (
	"context"
	"time"

	"github.com/finbooks/fin_books_app/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a paginated list of entry headers using
	// token-based pagination. It returns the entries, a token for the next
	// page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// CountEntriesByReferenceType returns how many entries exist for the given
	// reference type, used for entry-number sequence generation.
	CountEntriesByReferenceType(ctx context.Context, referenceType string) (int, error)
}

// JournalEntryWriter defines write operations for journal entry data.
type JournalEntryWriter interface {
	// SaveEntry persists the entry header and all of its lines as one
	// transaction. The entry is saved unposted.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// PostEntry atomically applies the entry's line deltas to account balances
	// and marks the entry posted. The already-posted check, the balance
	// writes, and the posted flag update all happen inside one transaction so
	// two concurrent posting attempts cannot both apply deltas.
	PostEntry(ctx context.Context, entryID string, postedBy string, postedAt time.Time) (*domain.JournalEntry, error)

	// UnpostEntry flips the posted flag back and clears posted metadata. It
	// does NOT reverse the balance deltas already applied; callers that need
	// corrected balances must post a reversing entry.
	UnpostEntry(ctx context.Context, entryID string, updatedBy string, now time.Time) (*domain.JournalEntry, error)
}

// JournalRepository combines all journal-entry repository interfaces.
type JournalRepository interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends JournalRepository with transaction
// capabilities.
type JournalRepositoryWithTx interface {
	JournalRepository
	TransactionManager
}
