package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the database representation of a currency conversion rate.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	EffectiveDate    time.Time       `db:"effective_date"`
	AuditFields
}
