package repositories

import (
	"context"
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
)

// ReportingRepository defines aggregate read operations for reports.
type ReportingRepository interface {
	// GetTrialBalanceData aggregates per-account debit and credit totals
	// over POSTED entries dated on or before asOf. Balance is left zero
	// and Names carries all locales; the service derives the signed
	// balance and the display name.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
