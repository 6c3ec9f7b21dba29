package services

import (
	"context"
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/dto"
)

// LedgerSvcFacade defines the running-balance ledger view operations.
type LedgerSvcFacade interface {
	// GetAccountLedger materializes the running-balance view of one
	// account over [from, to]. Only POSTED entries contribute; the
	// balance starts at zero at the beginning of the range.
	GetAccountLedger(ctx context.Context, accountID string, from, to time.Time) (*dto.LedgerResponse, error)
}
