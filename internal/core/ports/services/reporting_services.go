package services

import (
	"context"
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/dto"
)

// ReportingSvcFacade defines aggregate reporting operations.
type ReportingSvcFacade interface {
	// TrialBalance generates a trial balance as of a specific date.
	TrialBalance(ctx context.Context, asOf time.Time) (*dto.TrialBalanceResponse, error)
}
