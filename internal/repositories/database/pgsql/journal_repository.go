package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/fin_books_app/internal/apperrors"
	"github.com/finbooks/fin_books_app/internal/core/domain"
	portsrepo "github.com/finbooks/fin_books_app/internal/core/ports/repositories"
	"github.com/finbooks/fin_books_app/internal/models"
	"github.com/finbooks/fin_books_app/internal/utils/mapping"
	"github.com/finbooks/fin_books_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, entry_number, entry_date, reference_type, reference_id, description, notes, is_posted, posted_date, posted_by, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_no, account_id, account_code, account_name, debit_amount, credit_amount, description`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxJournalRepository creates a new repository for journal entry and line
// data. It needs the account repository to lock and mutate balances inside
// the posting transaction.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveEntry persists the entry header and all of its lines as one
// transaction. The entry is stored unposted.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction commits

	modelEntry := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelEntry.EntryID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.ReferenceType,
		modelEntry.ReferenceID,
		modelEntry.Description,
		modelEntry.Notes,
		modelEntry.IsPosted,
		modelEntry.PostedDate,
		modelEntry.PostedBy,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for i, line := range entry.Lines {
		modelLine := mapping.ToModelJournalLine(line, i+1)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.LineNo,
			modelLine.AccountID,
			modelLine.AccountCode,
			modelLine.AccountName,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			modelLine.Description,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal entry "+modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

func scanEntryRow(row pgx.Row) (*models.JournalEntry, error) {
	var modelEntry models.JournalEntry
	err := row.Scan(
		&modelEntry.EntryID,
		&modelEntry.EntryNumber,
		&modelEntry.EntryDate,
		&modelEntry.ReferenceType,
		&modelEntry.ReferenceID,
		&modelEntry.Description,
		&modelEntry.Notes,
		&modelEntry.IsPosted,
		&modelEntry.PostedDate,
		&modelEntry.PostedBy,
		&modelEntry.CreatedAt,
		&modelEntry.CreatedBy,
		&modelEntry.LastUpdatedAt,
		&modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &modelEntry, nil
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	modelEntry, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*modelEntry)
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_no;`
	rows, err := q.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := make([]domain.JournalLine, 0)
	for rows.Next() {
		var modelLine models.JournalLine
		err := rows.Scan(
			&modelLine.LineID,
			&modelLine.EntryID,
			&modelLine.LineNo,
			&modelLine.AccountID,
			&modelLine.AccountCode,
			&modelLine.AccountName,
			&modelLine.DebitAmount,
			&modelLine.CreditAmount,
			&modelLine.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(modelLine))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return lines, nil
}

// FindLinesByEntryID retrieves the lines of an entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	return r.findLines(ctx, r.Pool, entryID)
}

// ListEntries retrieves a page of entry headers, newest first, using a keyset
// cursor over (created_at, entry_id).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []any{limit + 1}
	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if nextToken != nil && *nextToken != "" {
		createdAt, entryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (created_at, entry_id) < ($2, $3)`
		args = append(args, createdAt, entryID)
	}
	query += ` ORDER BY created_at DESC, entry_id DESC LIMIT $1;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		modelEntry, err := scanEntryRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*modelEntry))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		token = &t
	}
	return entries, token, nil
}

// CountEntriesByReferenceType returns how many entries exist for the given
// reference type. Feeds the entry-number sequence; count-then-insert is not
// race-safe, which is accepted for a single-writer deployment.
func (r *PgxJournalRepository) CountEntriesByReferenceType(ctx context.Context, referenceType string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE reference_type = $1;`, referenceType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for reference type %s: %w", referenceType, err)
	}
	return count, nil
}

// PostEntry applies the entry's line deltas to account balances and marks the
// entry posted, all inside one transaction. Steps run in a fixed order: lock
// the entry row FOR UPDATE, check the already-posted flag against the locked
// row, re-validate the lines, lock the affected account rows, apply the
// deltas, mark the entry posted, commit. A concurrent posting attempt blocks
// on the entry lock and then fails the already-posted check, so deltas can
// never be applied twice; any failure before commit rolls the transaction
// back, so deltas are never applied without the posted flag.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entryID string, postedBy string, postedAt time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	modelEntry, err := scanEntryRow(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*modelEntry)

	if entry.IsPosted {
		return nil, fmt.Errorf("%w: entry %s is already posted", apperrors.ErrState, entry.EntryNumber)
	}

	lines, err := r.findLines(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines

	// Posting-time re-validation; entries are mutable while unposted.
	if len(entry.Lines) < 2 {
		return nil, fmt.Errorf("%w: entry %s has fewer than two lines", apperrors.ErrState, entry.EntryNumber)
	}
	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: entry %s is unbalanced: debits %s, credits %s",
			apperrors.ErrState, entry.EntryNumber, entry.TotalDebits().String(), entry.TotalCredits().String())
	}

	deltas, accountIDs := foldLineDeltas(entry.Lines)

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return nil, fmt.Errorf("failed to lock accounts for posting: %w", err)
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, postedBy, postedAt); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPersistence, err.Error())
	}

	markQuery := `
		UPDATE journal_entries
		SET is_posted = TRUE,
		    posted_date = $2,
		    posted_by = $3,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, markQuery, entryID, postedAt, postedBy); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark journal entry "+entryID+" posted", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.IsPosted = true
	entry.PostedDate = &postedAt
	entry.PostedBy = postedBy
	entry.LastUpdatedAt = postedAt
	entry.LastUpdatedBy = postedBy
	return &entry, nil
}

// foldLineDeltas folds the raw signed effect of each line (debit minus
// credit, independent of the account's normal side) into one delta per
// account. The returned IDs preserve first-seen line order so account row
// locks are always taken in a stable order.
func foldLineDeltas(lines []domain.JournalLine) (map[string]decimal.Decimal, []string) {
	deltas := make(map[string]decimal.Decimal)
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, seen := deltas[line.AccountID]; !seen {
			accountIDs = append(accountIDs, line.AccountID)
		}
		deltas[line.AccountID] = deltas[line.AccountID].Add(line.Delta())
	}
	return deltas, accountIDs
}

// UnpostEntry flips the posted flag back and clears posted metadata. Balance
// deltas already applied stay where they are; correcting them is the
// caller's job via a reversing entry.
func (r *PgxJournalRepository) UnpostEntry(ctx context.Context, entryID string, updatedBy string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	modelEntry, err := scanEntryRow(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*modelEntry)

	if !entry.IsPosted {
		return nil, fmt.Errorf("%w: entry %s is not posted", apperrors.ErrState, entry.EntryNumber)
	}

	clearQuery := `
		UPDATE journal_entries
		SET is_posted = FALSE,
		    posted_date = NULL,
		    posted_by = '',
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, clearQuery, entryID, now, updatedBy); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark journal entry "+entryID+" unposted", err)
	}

	lines, err := r.findLines(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Lines = lines
	entry.IsPosted = false
	entry.PostedDate = nil
	entry.PostedBy = ""
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = updatedBy
	return &entry, nil
}
