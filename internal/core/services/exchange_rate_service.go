package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-app/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-app/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
)

// exchangeRateService implements exchange rate recording and display
// conversion. Postings never convert; rates exist for presentation only.
type exchangeRateService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, currencySvc: currencySvc}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate records a new conversion rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	for _, code := range []string{req.FromCurrencyCode, req.ToCurrencyCode} {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency %s is not registered", apperrors.ErrValidation, code)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		EffectiveDate:    req.EffectiveDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("from", rate.FromCurrencyCode), slog.String("to", rate.ToCurrencyCode))
		return nil, err
	}

	s.LogInfo(ctx, "Exchange rate created", slog.String("exchange_rate_id", rate.ExchangeRateID))
	return &rate, nil
}

// GetLatestRate retrieves the most recent rate effective on or before asOf.
func (s *exchangeRateService) GetLatestRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindLatestRate(ctx, fromCode, toCode, asOf)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find exchange rate", slog.String("from", fromCode), slog.String("to", toCode))
		}
		return nil, err
	}
	return rate, nil
}

// Convert applies the latest effective rate to a Money value, rounding to
// the target currency's precision.
func (s *exchangeRateService) Convert(ctx context.Context, amount domain.Money, toCode string, asOf time.Time) (domain.Money, error) {
	if amount.CurrencyCode == toCode {
		return amount, nil
	}

	target, err := s.currencySvc.GetCurrencyByCode(ctx, toCode)
	if err != nil {
		return domain.Money{}, err
	}

	rate, err := s.GetLatestRate(ctx, amount.CurrencyCode, toCode, asOf)
	if err != nil {
		return domain.Money{}, err
	}

	return amount.Convert(rate.Rate, *target), nil
}
