package domain

import (
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// legalTransitions enumerates the allowed status transitions.
// Draft->Posted additionally requires the entry to validate; that check
// belongs to the service, not the state table.
var legalTransitions = map[EntryStatus][]EntryStatus{
	Draft:     {Posted, Cancelled},
	Posted:    {Cancelled},
	Cancelled: {},
}

// CanTransition reports whether moving from s to target is legal.
func (s EntryStatus) CanTransition(target EntryStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition validates the move from s to target, returning an
// IllegalTransitionError when the state machine forbids it.
func (s EntryStatus) Transition(target EntryStatus) error {
	if !s.CanTransition(target) {
		return &apperrors.IllegalTransitionError{From: string(s), To: string(target)}
	}
	return nil
}

// JournalEntry represents a single financial event composed of balanced
// debit and credit lines. Entries are created in Draft, become immutable
// when Posted, and contribute to ledger balances only while Posted.
type JournalEntry struct {
	EntryID      string        `json:"entryID"`     // Primary Key (UUID)
	EntryNumber  string        `json:"entryNumber"` // Unique human-assigned number (e.g., "JE-000001")
	JournalDate  time.Time     `json:"journalDate"` // Date the event occurred
	Description  string        `json:"description"`
	Reference    string        `json:"reference"` // Free-text external reference
	CurrencyCode string        `json:"currencyCode"`
	Status       EntryStatus   `json:"status"`
	Lines        []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single line of a journal entry, affecting one account.
// Exactly one of Debit/Credit is positive; the other is zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	EntryID     string          `json:"entryID"`   // FK -> JournalEntry
	AccountID   string          `json:"accountID"` // FK -> Account
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"` // Falls back to the entry description when empty
	AuditFields
}

// EffectiveDescription returns the line description, falling back to the
// owning entry's description.
func (l JournalLine) EffectiveDescription(entry JournalEntry) string {
	if l.Description != "" {
		return l.Description
	}
	return entry.Description
}

// TotalDebits sums the debit side of the entry's lines.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry's lines.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// IsEditable reports whether the entry's header and lines may still change.
func (e JournalEntry) IsEditable() bool {
	return e.Status == Draft
}
