package repositories

import (
	"context"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
)

// CurrencyRepositoryFacade defines persistence operations for currencies.
type CurrencyRepositoryFacade interface {
	// SaveCurrency inserts a new currency. Returns apperrors.ErrDuplicate
	// when the code already exists.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode retrieves a currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
