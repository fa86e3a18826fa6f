package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/fin_books_app/internal/apperrors"
	"github.com/finbooks/fin_books_app/internal/core/domain"
	portsrepo "github.com/finbooks/fin_books_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/fin_books_app/internal/core/ports/services"
	"github.com/finbooks/fin_books_app/internal/dto"
	"github.com/finbooks/fin_books_app/internal/middleware"
)

var (
	ErrEntryUnbalanced = errors.New("journal entry debits and credits do not balance")
	ErrEntryMinLines   = errors.New("journal entry must have at least two lines")
	ErrAccountNotFound = errors.New("account not found")
)

// postingService is the posting engine. It orchestrates entry creation,
// validation, posting, and balance mutation; nothing else writes account
// balances.
type postingService struct {
	registry    portssvc.AccountRegistrySvc
	journalRepo portsrepo.JournalRepositoryWithTx
}

// NewPostingService creates a new posting engine.
func NewPostingService(journalRepo portsrepo.JournalRepositoryWithTx, registry portssvc.AccountRegistrySvc) portssvc.PostingSvc {
	return &postingService{
		registry:    registry,
		journalRepo: journalRepo,
	}
}

// Ensure postingService implements the posting facade
var _ portssvc.PostingSvc = (*postingService)(nil)

// CreateJournalEntry validates the candidate entry and persists the header and
// lines as one transaction, unposted.
func (s *postingService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryMinLines)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	entry := domain.JournalEntry{
		EntryID:       entryID,
		EntryDate:     req.EntryDate,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Description:   req.Description,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	for _, lineReq := range req.Lines {
		account, err := s.registry.GetAccountByID(ctx, lineReq.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, lineReq.AccountID)
			}
			logger.Error("Failed to resolve account for journal line", slog.String("error", err.Error()), slog.String("account_id", lineReq.AccountID))
			return nil, fmt.Errorf("failed to resolve account %s: %w", lineReq.AccountID, err)
		}
		if !account.IsPostable() {
			return nil, fmt.Errorf("%w: account %s (%s) cannot be posted to", apperrors.ErrValidation, account.Code, account.AccountID)
		}

		line, err := domain.NewJournalLine(account.AccountID, account.Code, account.Name, lineReq.DebitAmount, lineReq.CreditAmount, lineReq.Description)
		if err != nil {
			return nil, err
		}
		line.LineID = uuid.NewString()
		line.EntryID = entryID
		if err := entry.AddLine(line); err != nil {
			return nil, err
		}
	}

	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: %s: debits %s, credits %s",
			apperrors.ErrValidation, ErrEntryUnbalanced, entry.TotalDebits().String(), entry.TotalCredits().String())
	}

	// Entry-number assignment. The count-then-insert sequence is not safe
	// under concurrent creators of the same reference type; acceptable for a
	// single-writer deployment.
	count, err := s.journalRepo.CountEntriesByReferenceType(ctx, req.ReferenceType)
	if err != nil {
		logger.Error("Failed to count entries for number generation", slog.String("error", err.Error()), slog.String("reference_type", req.ReferenceType))
		return nil, fmt.Errorf("failed to generate entry number: %w", err)
	}
	entry.EntryNumber = domain.FormatEntryNumber(req.ReferenceType, count+1, now)

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("reference_type", entry.ReferenceType))
	return &entry, nil
}

// GetJournalEntryByID retrieves an entry header with its lines.
func (s *postingService) GetJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines

	return entry, nil
}

// ListJournalEntries retrieves a paginated list of entry headers.
func (s *postingService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   responses,
		NextToken: nextToken,
	}, nil
}

// PostJournalEntry applies the entry's line deltas to account balances and
// marks it posted, all inside one repository transaction. A second posting
// attempt on the same entry fails with apperrors.ErrState without mutating
// anything.
func (s *postingService) PostJournalEntry(ctx context.Context, entryID string, postedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if postedBy == "" {
		return nil, fmt.Errorf("%w: postedBy is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entry, err := s.journalRepo.PostEntry(ctx, entryID, postedBy, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrState) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Posting rejected", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		} else {
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	// Re-mirror the mutated rows into the chart-of-accounts index.
	accountIDs := make([]string, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	if err := s.registry.Refresh(ctx, accountIDs); err != nil {
		// The post itself committed; a stale cache entry self-heals on the
		// next refresh, so log and carry on.
		logger.Warn("Failed to refresh account registry after post", slog.String("error", err.Error()), slog.String("entry_id", entryID))
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("posted_by", postedBy))
	return entry, nil
}

// UnpostJournalEntry flips the posted flag back and clears posted metadata.
// The balance deltas already applied are NOT reversed; downstream reports
// keep matching the legacy ledger, and corrections go through reversing
// entries.
func (s *postingService) UnpostJournalEntry(ctx context.Context, entryID string, updatedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	entry, err := s.journalRepo.UnpostEntry(ctx, entryID, updatedBy, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrState) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Unposting rejected", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		} else {
			logger.Error("Failed to unpost journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	logger.Info("Journal entry unposted; balances were not reversed",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}
