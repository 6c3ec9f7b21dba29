package dto

import (
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one account row of a trial balance report.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse is a trial balance as of a date. TotalDebits and
// TotalCredits must tie for a consistent ledger.
type TrialBalanceResponse struct {
	AsOf         time.Time                 `json:"asOf"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
	Balanced     bool                      `json:"balanced"`
}

// ToTrialBalanceRowResponse converts a domain trial balance row. The
// display name is resolved by the caller from the row's locale map.
func ToTrialBalanceRowResponse(row domain.TrialBalanceRow, accountName string) TrialBalanceRowResponse {
	return TrialBalanceRowResponse{
		AccountID:   row.AccountID,
		AccountCode: row.AccountCode,
		AccountName: accountName,
		AccountType: string(row.AccountType),
		TotalDebit:  row.TotalDebit,
		TotalCredit: row.TotalCredit,
		Balance:     row.Balance,
	}
}
