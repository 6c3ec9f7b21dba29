package dto

import (
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerParams holds the date range for a ledger view.
type LedgerParams struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// LedgerRowResponse is one row of an account's running-balance view.
type LedgerRowResponse struct {
	Date        time.Time       `json:"date"`
	EntryNumber string          `json:"entryNumber"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerResponse is the materialized ledger view of one account.
type LedgerResponse struct {
	AccountID      string              `json:"accountID"`
	AccountCode    string              `json:"accountCode"`
	NormalSide     string              `json:"normalSide"`
	CurrencyCode   string              `json:"currencyCode"`
	Rows           []LedgerRowResponse `json:"rows"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
}

// ToLedgerRowResponses converts computed domain ledger rows.
func ToLedgerRowResponses(rows []domain.LedgerRow) []LedgerRowResponse {
	responses := make([]LedgerRowResponse, len(rows))
	for i, row := range rows {
		responses[i] = LedgerRowResponse{
			Date:        row.JournalDate,
			EntryNumber: row.EntryNumber,
			Description: row.Description,
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}
	}
	return responses
}
