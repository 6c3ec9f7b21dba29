package services

import (
	"context"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
)

// CurrencySvcFacade defines currency registry operations.
type CurrencySvcFacade interface {
	// CreateCurrency registers a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
