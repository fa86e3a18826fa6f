package mapping

import (
	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/finbooks/fin_books_app/internal/models"
)

// ToModelAccount converts a domain account to its persistence model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		NormalSide:      models.NormalSide(d.NormalSide),
		ParentAccountID: d.ParentAccountID,
		IsHeader:        d.IsHeader,
		IsActive:        d.IsActive,
		IsLocked:        d.IsLocked,
		Description:     d.Description,
		OpeningBalance:  d.OpeningBalance,
		CurrentBalance:  d.CurrentBalance,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
		LastUpdatedAt:   d.LastUpdatedAt,
		LastUpdatedBy:   d.LastUpdatedBy,
	}
}

// ToDomainAccount converts a persistence model back to the domain account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		NormalSide:      domain.NormalSide(m.NormalSide),
		ParentAccountID: m.ParentAccountID,
		IsHeader:        m.IsHeader,
		IsActive:        m.IsActive,
		IsLocked:        m.IsLocked,
		Description:     m.Description,
		OpeningBalance:  m.OpeningBalance,
		CurrentBalance:  m.CurrentBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainAccountSlice converts a slice of persistence models.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	res := make([]domain.Account, len(ms))
	for i, m := range ms {
		res[i] = ToDomainAccount(m)
	}
	return res
}
