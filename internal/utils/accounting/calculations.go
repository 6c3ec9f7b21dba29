// Package accounting holds the pure double-entry computations shared by
// services and repositories: the normal-side convention, journal entry
// validation, and the running-ledger-balance accumulator. Nothing here
// touches storage or mutates its inputs.
package accounting

import (
	"fmt"
	"sort"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalSide returns the side on which an account's balance grows.
// ASSET/EXPENSE accounts are debit-normal; LIABILITY/EQUITY/INCOME are
// credit-normal. Pure function of the account type.
func NormalSide(accountType domain.AccountType) (domain.Side, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return domain.DebitSide, nil
	case domain.Liability, domain.Equity, domain.Income:
		return domain.CreditSide, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// SignedAmount converts a line's debit/credit pair into a single signed
// contribution toward a balance on the given normal side.
// DEBIT to a debit-normal account -> positive; CREDIT -> negative.
// DEBIT to a credit-normal account -> negative; CREDIT -> positive.
func SignedAmount(debit, credit decimal.Decimal, normalSide domain.Side) decimal.Decimal {
	if normalSide == domain.DebitSide {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// ValidateEntry enforces the double-entry invariants on a candidate entry.
// Rules are applied in order and the first failure short-circuits:
//  1. at least two lines
//  2. every line references a registered, active account
//  3. no line has both debit and credit set
//  4. no line has neither set (zero or negative amounts)
//  5. sum(debits) == sum(credits), exactly
//
// Line currency is the entry currency by construction; the referenced
// accounts must carry that same currency. Validation is side-effect-free:
// it never mutates the entry and never persists anything.
func ValidateEntry(entry domain.JournalEntry, accounts map[string]domain.Account) error {
	if len(entry.Lines) < 2 {
		return apperrors.ErrMinLines
	}

	for _, line := range entry.Lines {
		acc, ok := accounts[line.AccountID]
		if !ok || !acc.IsActive {
			return fmt.Errorf("%w: account %s", apperrors.ErrUnknownAccount, line.AccountID)
		}
		if acc.CurrencyCode != entry.CurrencyCode {
			return fmt.Errorf("%w: account %s is %s, entry is %s",
				apperrors.ErrCurrencyMismatch, line.AccountID, acc.CurrencyCode, entry.CurrencyCode)
		}
	}

	for _, line := range entry.Lines {
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return fmt.Errorf("%w: line for account %s", apperrors.ErrMixedLine, line.AccountID)
		}
	}

	for _, line := range entry.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line for account %s has a negative amount", apperrors.ErrEmptyLine, line.AccountID)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("%w: line for account %s", apperrors.ErrEmptyLine, line.AccountID)
		}
	}

	difference := entry.TotalDebits().Sub(entry.TotalCredits())
	if !difference.IsZero() {
		return &apperrors.UnbalancedEntryError{Difference: difference}
	}

	return nil
}

// ComputeLedger materializes the running-balance view of one account from
// its posted lines. Input lines may arrive in any order: they are sorted
// by (journal date, entry number) ascending, entry number breaking ties
// for same-day entries. The running balance starts at zero for each
// invocation; no opening balance is carried across date-range boundaries.
// The caller must supply lines from Posted entries only.
func ComputeLedger(normalSide domain.Side, lines []domain.LedgerLine) []domain.LedgerRow {
	sorted := make([]domain.LedgerLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].JournalDate.Equal(sorted[j].JournalDate) {
			return sorted[i].JournalDate.Before(sorted[j].JournalDate)
		}
		return sorted[i].EntryNumber < sorted[j].EntryNumber
	})

	rows := make([]domain.LedgerRow, 0, len(sorted))
	balance := decimal.Zero
	for _, line := range sorted {
		balance = balance.Add(SignedAmount(line.Debit, line.Credit, normalSide))
		rows = append(rows, domain.LedgerRow{
			JournalDate: line.JournalDate,
			EntryNumber: line.EntryNumber,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Balance:     balance,
		})
	}
	return rows
}
