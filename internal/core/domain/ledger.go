package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is one posted journal line as fed into the running-balance
// computation for a single account. Callers supply only lines from
// Posted entries; the accumulator does not filter by status.
type LedgerLine struct {
	JournalDate time.Time       `json:"journalDate"`
	EntryNumber string          `json:"entryNumber"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerRow is one row of a materialized ledger view: the source line
// plus the running balance after applying it. Rows are a projection,
// recomputed on demand and never persisted.
type LedgerRow struct {
	JournalDate time.Time       `json:"journalDate"`
	EntryNumber string          `json:"entryNumber"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceRow aggregates one account's posted activity as of a date.
// Names carries the per-locale display names; the reporting service picks
// the one matching its configured locale.
type TrialBalanceRow struct {
	AccountID   string            `json:"accountID"`
	AccountCode string            `json:"accountCode"`
	Names       map[string]string `json:"names"`
	AccountType AccountType       `json:"accountType"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balance     decimal.Decimal   `json:"balance"` // Signed by the account's normal side
}
