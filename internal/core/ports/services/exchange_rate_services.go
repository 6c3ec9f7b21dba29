package services

import (
	"context"
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
)

// ExchangeRateSvcFacade defines exchange rate operations.
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate records a new conversion rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// GetLatestRate retrieves the most recent rate between two currencies
	// effective on or before asOf.
	GetLatestRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// Convert applies the latest effective rate to a Money value, rounding
	// to the target currency's precision.
	Convert(ctx context.Context, amount domain.Money, toCode string, asOf time.Time) (domain.Money, error)
}
