package dto

import (
	"time"

	"github.com/finbooks/fin_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalSide      domain.NormalSide  `json:"normalSide" binding:"required,oneof=DEBIT CREDIT"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	IsHeader        bool               `json:"isHeader"`
	Description     string             `json:"description"` // Optional
	OpeningBalance  decimal.Decimal    `json:"openingBalance"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	NormalSide      domain.NormalSide  `json:"normalSide"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string if null in DB
	IsHeader        bool               `json:"isHeader"`
	IsActive        bool               `json:"isActive"`
	IsLocked        bool               `json:"isLocked"`
	Description     string             `json:"description"`
	OpeningBalance  decimal.Decimal    `json:"openingBalance"`
	CurrentBalance  decimal.Decimal    `json:"currentBalance"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		NormalSide:      acc.NormalSide,
		ParentAccountID: acc.ParentAccountID,
		IsHeader:        acc.IsHeader,
		IsActive:        acc.IsActive,
		IsLocked:        acc.IsLocked,
		Description:     acc.Description,
		OpeningBalance:  acc.OpeningBalance,
		CurrentBalance:  acc.CurrentBalance,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsParams defines query parameters for listing accounts. Without a
// type filter the listing returns active leaf accounts only.
type ListAccountsParams struct {
	AccountType string `form:"type"` // Optional type filter
}
