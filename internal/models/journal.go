package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus for the journal_entries table.
type EntryStatus string

// JournalEntry is the database representation of a journal entry header.
type JournalEntry struct {
	EntryID      string      `db:"entry_id"`
	EntryNumber  string      `db:"entry_number"`
	JournalDate  time.Time   `db:"journal_date"`
	Description  string      `db:"description"`
	Reference    string      `db:"reference"`
	CurrencyCode string      `db:"currency_code"`
	Status       EntryStatus `db:"status"`
	AuditFields
}

// JournalLine is the database representation of a single entry line.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	AuditFields
}
