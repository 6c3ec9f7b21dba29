package repositories

import (
	"context"
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
)

// ExchangeRateRepositoryFacade defines persistence operations for exchange rates.
type ExchangeRateRepositoryFacade interface {
	// SaveExchangeRate inserts a new exchange rate record.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindLatestRate retrieves the most recent rate between two currencies
	// effective on or before asOf.
	FindLatestRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error)
}
