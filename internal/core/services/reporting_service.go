package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-app/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-app/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
	"github.com/openbooks-app/openbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService generates aggregate reports over posted entries.
// Account display names are resolved against the configured locale.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	locale        string
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, locale string) portssvc.ReportingSvcFacade {
	if locale == "" {
		locale = "en"
	}
	return &reportingService{reportingRepo: reportingRepo, locale: locale}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance generates a trial balance as of a specific date. Each
// account's closing balance is signed by its normal side; total debits
// and credits must tie when every posted entry balanced.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	responses := make([]dto.TrialBalanceRowResponse, len(rows))
	for i, row := range rows {
		normalSide, err := accounting.NormalSide(row.AccountType)
		if err != nil {
			return nil, fmt.Errorf("trial balance row for account %s: %w", row.AccountID, err)
		}
		row.Balance = accounting.SignedAmount(row.TotalDebit, row.TotalCredit, normalSide)

		totalDebits = totalDebits.Add(row.TotalDebit)
		totalCredits = totalCredits.Add(row.TotalCredit)

		account := domain.Account{Code: row.AccountCode, Names: row.Names}
		responses[i] = dto.ToTrialBalanceRowResponse(row, account.Name(s.locale))
	}

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)))

	return &dto.TrialBalanceResponse{
		AsOf:         asOf,
		Rows:         responses,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Balanced:     totalDebits.Equal(totalCredits),
	}, nil
}
