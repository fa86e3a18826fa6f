package mapping

import (
	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/finbooks/fin_books_app/internal/models"
)

// ToModelJournalEntry converts a domain journal entry header to its
// persistence model. Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		EntryNumber:   d.EntryNumber,
		EntryDate:     d.EntryDate,
		ReferenceType: d.ReferenceType,
		ReferenceID:   d.ReferenceID,
		Description:   d.Description,
		Notes:         d.Notes,
		IsPosted:      d.IsPosted,
		PostedDate:    d.PostedDate,
		PostedBy:      d.PostedBy,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainJournalEntry converts a persistence model back to the domain entry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		EntryNumber:   m.EntryNumber,
		EntryDate:     m.EntryDate,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Description:   m.Description,
		Notes:         m.Notes,
		IsPosted:      m.IsPosted,
		PostedDate:    m.PostedDate,
		PostedBy:      m.PostedBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelJournalLine converts a domain line to its persistence model.
// lineNo preserves insertion order for display.
func ToModelJournalLine(d domain.JournalLine, lineNo int) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		LineNo:       lineNo,
		AccountID:    d.AccountID,
		AccountCode:  d.AccountCode,
		AccountName:  d.AccountName,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
	}
}

// ToDomainJournalLine converts a persistence model back to the domain line.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		AccountCode:  m.AccountCode,
		AccountName:  m.AccountName,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
	}
}
