package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
)

var (
	usd = domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}
	jpy = domain.Currency{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0}
	eur = domain.Currency{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2}
)

func mustMoney(t *testing.T, amount string, currency domain.Currency) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	m, err := domain.NewMoney(decimal.RequireFromString("10.50"), usd)
	require.NoError(t, err)
	assert.Equal(t, "USD", m.CurrencyCode)
	assert.True(t, m.Amount.Equal(decimal.RequireFromString("10.5")))
}

func TestNewMoney_ExcessPrecision(t *testing.T) {
	_, err := domain.NewMoney(decimal.RequireFromString("10.505"), usd)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPrecision)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewMoney(decimal.RequireFromString("100.5"), jpy)
	assert.ErrorIs(t, err, apperrors.ErrPrecision)
}

func TestMoney_AddSub(t *testing.T) {
	a := mustMoney(t, "10.10", usd)
	b := mustMoney(t, "0.20", usd)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.RequireFromString("10.30")), "got %s", sum.Amount)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount.Equal(decimal.RequireFromString("9.90")), "got %s", diff.Amount)
}

func TestMoney_AddRepeated_NoDrift(t *testing.T) {
	// 0.1 added ten times must be exactly 1, the classic float trap.
	tenth := mustMoney(t, "0.1", usd)
	total := domain.Money{Amount: decimal.Zero, CurrencyCode: "USD"}
	var err error
	for i := 0; i < 10; i++ {
		total, err = total.Add(tenth)
		require.NoError(t, err)
	}
	assert.True(t, total.Amount.Equal(decimal.NewFromInt(1)), "got %s", total.Amount)
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	a := mustMoney(t, "10.00", usd)
	b := mustMoney(t, "10.00", eur)

	_, err := a.Add(b)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	_, err = a.Sub(b)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	_, err = a.Cmp(b)
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	assert.False(t, a.Equal(b))
}

func TestMoney_Cmp(t *testing.T) {
	a := mustMoney(t, "1.00", usd)
	b := mustMoney(t, "2.00", usd)

	cmp, err := a.Cmp(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = b.Cmp(a)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = a.Cmp(a)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestMoney_MulScalarQuantize(t *testing.T) {
	price := mustMoney(t, "19.99", usd)

	// 19.99 * 3 = 59.97, exactly representable
	tripled := price.MulScalar(decimal.NewFromInt(3))
	q, err := tripled.Quantize(usd)
	require.NoError(t, err)
	assert.True(t, q.Amount.Equal(decimal.RequireFromString("59.97")))

	// 19.99 * 0.0825 = 1.649175, not representable at 2 decimals
	taxed := price.MulScalar(decimal.RequireFromString("0.0825"))
	_, err = taxed.Quantize(usd)
	assert.ErrorIs(t, err, apperrors.ErrPrecision)
}

func TestMoney_Convert(t *testing.T) {
	amount := mustMoney(t, "100.00", usd)

	// Conversion rounds to the target precision explicitly.
	converted := amount.Convert(decimal.RequireFromString("146.335"), jpy)
	assert.Equal(t, "JPY", converted.CurrencyCode)
	assert.True(t, converted.Amount.Equal(decimal.NewFromInt(14634)), "got %s", converted.Amount)
}

func TestMoney_Format(t *testing.T) {
	assert.Equal(t, "12.35", mustMoney(t, "12.35", usd).Format(usd))
	assert.Equal(t, "12.00", mustMoney(t, "12", usd).Format(usd))
	assert.Equal(t, "150", mustMoney(t, "150", jpy).Format(jpy))
}

func TestMoney_IsZero(t *testing.T) {
	assert.True(t, mustMoney(t, "0", usd).IsZero())
	assert.False(t, mustMoney(t, "0.01", usd).IsZero())
}
