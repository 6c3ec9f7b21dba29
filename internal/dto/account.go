package dto

import (
	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
)

// CreateAccountRequest defines the payload for registering an account.
type CreateAccountRequest struct {
	Code         string            `json:"code" binding:"required"`
	AccountType  string            `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode string            `json:"currencyCode" binding:"required,len=3"`
	Names        map[string]string `json:"names" binding:"required,min=1"`
	Description  string            `json:"description"`
}

// UpdateAccountRequest defines the mutable account fields. The account
// type is deliberately absent: it is immutable once set.
type UpdateAccountRequest struct {
	Names       map[string]string `json:"names"`
	Description *string           `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string            `json:"accountID"`
	Code         string            `json:"code"`
	AccountType  string            `json:"accountType"`
	NormalSide   string            `json:"normalSide"`
	CurrencyCode string            `json:"currencyCode"`
	Names        map[string]string `json:"names"`
	Description  string            `json:"description,omitempty"`
	IsActive     bool              `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
// normalSide is supplied by the caller since it derives from the type.
func ToAccountResponse(a *domain.Account, normalSide domain.Side) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Code:         a.Code,
		AccountType:  string(a.AccountType),
		NormalSide:   string(normalSide),
		CurrencyCode: a.CurrencyCode,
		Names:        a.Names,
		Description:  a.Description,
		IsActive:     a.IsActive,
	}
}

// ListAccountsResponse wraps the account listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
