package domain

import (
	"fmt"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is a monetary amount bound to a currency. Amounts are exact
// decimals; binary floats never enter the arithmetic.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// NewMoney builds a Money value, rejecting amounts that carry more decimal
// places than the currency supports.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !amount.Equal(amount.Round(int32(currency.Precision))) {
		return Money{}, fmt.Errorf("%w: %s has more than %d decimal places for %s",
			apperrors.ErrPrecision, amount.String(), currency.Precision, currency.CurrencyCode)
	}
	return Money{Amount: amount, CurrencyCode: currency.CurrencyCode}, nil
}

// Add returns m + other. Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s",
			apperrors.ErrCurrencyMismatch, other.CurrencyCode, m.CurrencyCode)
	}
	return Money{Amount: m.Amount.Add(other.Amount), CurrencyCode: m.CurrencyCode}, nil
}

// Sub returns m - other. Both operands must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s",
			apperrors.ErrCurrencyMismatch, other.CurrencyCode, m.CurrencyCode)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), CurrencyCode: m.CurrencyCode}, nil
}

// Cmp compares two amounts of the same currency: -1 if m < other, 0 if
// equal, +1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return 0, fmt.Errorf("%w: cannot compare %s with %s",
			apperrors.ErrCurrencyMismatch, m.CurrencyCode, other.CurrencyCode)
	}
	return m.Amount.Cmp(other.Amount), nil
}

// Equal reports whether two Money values have the same currency and amount.
func (m Money) Equal(other Money) bool {
	return m.CurrencyCode == other.CurrencyCode && m.Amount.Equal(other.Amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// MulScalar multiplies the amount by a scalar (e.g., a tax or exchange
// rate). The result keeps full decimal precision; callers round via
// Quantize when a representable amount is required.
func (m Money) MulScalar(k decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(k), CurrencyCode: m.CurrencyCode}
}

// Quantize checks that the amount is representable at the currency's
// precision and returns it unchanged. Amounts with residue beyond the
// minor unit fail with ErrPrecision rather than being silently rounded.
func (m Money) Quantize(currency Currency) (Money, error) {
	if m.CurrencyCode != currency.CurrencyCode {
		return Money{}, fmt.Errorf("%w: amount is %s, currency is %s",
			apperrors.ErrCurrencyMismatch, m.CurrencyCode, currency.CurrencyCode)
	}
	rounded := m.Amount.Round(int32(currency.Precision))
	if !rounded.Equal(m.Amount) {
		return Money{}, fmt.Errorf("%w: %s cannot be represented with %d decimal places",
			apperrors.ErrPrecision, m.Amount.String(), currency.Precision)
	}
	return Money{Amount: rounded, CurrencyCode: m.CurrencyCode}, nil
}

// Convert applies an exchange rate and rounds to the target currency's
// precision. Rounding here is explicit and expected; use Quantize when
// loss must be an error instead.
func (m Money) Convert(rate decimal.Decimal, target Currency) Money {
	return Money{
		Amount:       m.Amount.Mul(rate).Round(int32(target.Precision)),
		CurrencyCode: target.CurrencyCode,
	}
}

// Format renders the amount at the currency's precision for display.
// Example: 12.3456 with USD (precision 2) renders "12.35".
func (m Money) Format(currency Currency) string {
	return m.Amount.Round(int32(currency.Precision)).StringFixed(int32(currency.Precision))
}
