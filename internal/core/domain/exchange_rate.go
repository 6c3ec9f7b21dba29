package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate holds a conversion rate between two currencies effective
// from a given date. Used only for display conversion; postings always
// stay in the entry's own currency.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"` // Multiplier from -> to, > 0
	EffectiveDate    time.Time       `json:"effectiveDate"`
	AuditFields
}
