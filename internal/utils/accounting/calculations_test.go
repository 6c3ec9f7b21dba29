package accounting_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/openbooks-app/openbooks_backend/internal/utils/accounting"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeAccount(id string, accountType domain.AccountType) domain.Account {
	return domain.Account{
		AccountID:    id,
		AccountType:  accountType,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func balancedEntry(accounts ...string) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      "e1",
		CurrencyCode: "USD",
		Status:       domain.Draft,
		Lines: []domain.JournalLine{
			{AccountID: accounts[0], Debit: dec("100.00")},
			{AccountID: accounts[1], Credit: dec("100.00")},
		},
	}
}

func TestNormalSide(t *testing.T) {
	cases := []struct {
		accountType domain.AccountType
		side        domain.Side
	}{
		{domain.Asset, domain.DebitSide},
		{domain.Expense, domain.DebitSide},
		{domain.Liability, domain.CreditSide},
		{domain.Equity, domain.CreditSide},
		{domain.Income, domain.CreditSide},
	}

	for _, tc := range cases {
		side, err := accounting.NormalSide(tc.accountType)
		require.NoError(t, err, "type %s", tc.accountType)
		assert.Equal(t, tc.side, side, "type %s", tc.accountType)
	}

	_, err := accounting.NormalSide(domain.AccountType("SUSPENSE"))
	assert.Error(t, err)
}

func TestSignedAmount(t *testing.T) {
	// Debit-normal account: debits grow the balance.
	assert.True(t, accounting.SignedAmount(dec("100"), decimal.Zero, domain.DebitSide).Equal(dec("100")))
	assert.True(t, accounting.SignedAmount(decimal.Zero, dec("30"), domain.DebitSide).Equal(dec("-30")))
	// Credit-normal account: credits grow the balance.
	assert.True(t, accounting.SignedAmount(dec("100"), decimal.Zero, domain.CreditSide).Equal(dec("-100")))
	assert.True(t, accounting.SignedAmount(decimal.Zero, dec("30"), domain.CreditSide).Equal(dec("30")))
}

func TestValidateEntry_Valid(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":    activeAccount("cash", domain.Asset),
		"revenue": activeAccount("revenue", domain.Income),
	}

	err := accounting.ValidateEntry(balancedEntry("cash", "revenue"), accounts)
	assert.NoError(t, err)
}

func TestValidateEntry_MinLines(t *testing.T) {
	entry := domain.JournalEntry{
		CurrencyCode: "USD",
		Lines:        []domain.JournalLine{{AccountID: "cash", Debit: dec("100")}},
	}
	err := accounting.ValidateEntry(entry, map[string]domain.Account{"cash": activeAccount("cash", domain.Asset)})
	assert.ErrorIs(t, err, apperrors.ErrMinLines)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateEntry_UnknownAccount(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash": activeAccount("cash", domain.Asset),
	}
	err := accounting.ValidateEntry(balancedEntry("cash", "ghost"), accounts)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
}

func TestValidateEntry_InactiveAccount(t *testing.T) {
	inactive := activeAccount("revenue", domain.Income)
	inactive.IsActive = false
	accounts := map[string]domain.Account{
		"cash":    activeAccount("cash", domain.Asset),
		"revenue": inactive,
	}
	err := accounting.ValidateEntry(balancedEntry("cash", "revenue"), accounts)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
}

func TestValidateEntry_CurrencyMismatch(t *testing.T) {
	eurAccount := activeAccount("revenue", domain.Income)
	eurAccount.CurrencyCode = "EUR"
	accounts := map[string]domain.Account{
		"cash":    activeAccount("cash", domain.Asset),
		"revenue": eurAccount,
	}
	err := accounting.ValidateEntry(balancedEntry("cash", "revenue"), accounts)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
}

func TestValidateEntry_MixedLine(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":    activeAccount("cash", domain.Asset),
		"revenue": activeAccount("revenue", domain.Income),
	}
	// The mixed line is also part of an unbalanced entry; the line rule
	// must fire first.
	entry := domain.JournalEntry{
		CurrencyCode: "USD",
		Lines: []domain.JournalLine{
			{AccountID: "cash", Debit: dec("100"), Credit: dec("40")},
			{AccountID: "revenue", Credit: dec("10")},
		},
	}
	err := accounting.ValidateEntry(entry, accounts)
	assert.ErrorIs(t, err, apperrors.ErrMixedLine)
}

func TestValidateEntry_EmptyAndNegativeLines(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":    activeAccount("cash", domain.Asset),
		"revenue": activeAccount("revenue", domain.Income),
	}

	empty := domain.JournalEntry{
		CurrencyCode: "USD",
		Lines: []domain.JournalLine{
			{AccountID: "cash", Debit: dec("100")},
			{AccountID: "revenue"},
		},
	}
	assert.ErrorIs(t, accounting.ValidateEntry(empty, accounts), apperrors.ErrEmptyLine)

	negative := domain.JournalEntry{
		CurrencyCode: "USD",
		Lines: []domain.JournalLine{
			{AccountID: "cash", Debit: dec("100")},
			{AccountID: "revenue", Credit: dec("-100")},
		},
	}
	assert.ErrorIs(t, accounting.ValidateEntry(negative, accounts), apperrors.ErrEmptyLine)
}

func TestValidateEntry_Unbalanced(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":    activeAccount("cash", domain.Asset),
		"revenue": activeAccount("revenue", domain.Income),
	}
	entry := domain.JournalEntry{
		CurrencyCode: "USD",
		Lines: []domain.JournalLine{
			{AccountID: "cash", Debit: dec("100.00")},
			{AccountID: "revenue", Credit: dec("99.99")},
		},
	}

	err := accounting.ValidateEntry(entry, accounts)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var unbalanced *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, unbalanced.Difference.Equal(dec("0.01")), "got %s", unbalanced.Difference)
}

func TestComputeLedger_NormalSides(t *testing.T) {
	lines := []domain.LedgerLine{
		{JournalDate: day(1), EntryNumber: "JE-000001", Debit: dec("100")},
		{JournalDate: day(2), EntryNumber: "JE-000002", Credit: dec("30")},
	}

	// Asset account: 100 debit, 30 credit -> balance 70.
	rows := accounting.ComputeLedger(domain.DebitSide, lines)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Balance.Equal(dec("100")))
	assert.True(t, rows[1].Balance.Equal(dec("70")))

	// The same movements against a liability account balance to -70.
	rows = accounting.ComputeLedger(domain.CreditSide, lines)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Balance.Equal(dec("-100")))
	assert.True(t, rows[1].Balance.Equal(dec("-70")))
}

func TestComputeLedger_OrderingDeterministic(t *testing.T) {
	// Same-day entries must sort by entry number regardless of input order.
	lines := []domain.LedgerLine{
		{JournalDate: day(1), EntryNumber: "JE-000002", Debit: dec("50")},
		{JournalDate: day(1), EntryNumber: "JE-000001", Debit: dec("100")},
		{JournalDate: day(2), EntryNumber: "JE-000003", Credit: dec("25")},
	}

	rows := accounting.ComputeLedger(domain.DebitSide, lines)
	require.Len(t, rows, 3)
	assert.Equal(t, "JE-000001", rows[0].EntryNumber)
	assert.Equal(t, "JE-000002", rows[1].EntryNumber)
	assert.Equal(t, "JE-000003", rows[2].EntryNumber)

	assert.True(t, rows[0].Balance.Equal(dec("100")))
	assert.True(t, rows[1].Balance.Equal(dec("150")))
	assert.True(t, rows[2].Balance.Equal(dec("125")))
}

func TestComputeLedger_InputNotMutated(t *testing.T) {
	lines := []domain.LedgerLine{
		{JournalDate: day(2), EntryNumber: "JE-000002", Debit: dec("1")},
		{JournalDate: day(1), EntryNumber: "JE-000001", Debit: dec("2")},
	}

	accounting.ComputeLedger(domain.DebitSide, lines)
	assert.Equal(t, "JE-000002", lines[0].EntryNumber, "input slice order preserved")
}

func TestComputeLedger_Empty(t *testing.T) {
	rows := accounting.ComputeLedger(domain.DebitSide, nil)
	assert.Empty(t, rows)
}

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
}
