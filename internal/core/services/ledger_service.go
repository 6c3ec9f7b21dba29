package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	portsrepo "github.com/openbooks-app/openbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/openbooks-app/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
	"github.com/openbooks-app/openbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerService materializes running-balance views. It owns no state:
// every read fetches the posted lines for the requested window and runs
// the pure accumulator over them.
type ledgerService struct {
	BaseService
	entryRepo  portsrepo.LedgerReader
	accountSvc portssvc.AccountSvcFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(entryRepo portsrepo.LedgerReader, accountSvc portssvc.AccountSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{entryRepo: entryRepo, accountSvc: accountSvc}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetAccountLedger computes the running-balance view of one account over
// [from, to]. The repository query already restricts lines to POSTED
// entries, so a cancelled entry contributes nothing regardless of its
// prior status. The running balance starts at zero for the window.
func (s *ledgerService) GetAccountLedger(ctx context.Context, accountID string, from, to time.Time) (*dto.LedgerResponse, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	normalSide, err := accounting.NormalSide(account.AccountType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err.Error())
	}

	lines, err := s.entryRepo.ListLedgerLines(ctx, accountID, from, to)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to fetch ledger lines", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to retrieve ledger lines: %w", err)
	}

	rows := accounting.ComputeLedger(normalSide, lines)

	closing := decimal.Zero
	if len(rows) > 0 {
		closing = rows[len(rows)-1].Balance
	}

	s.LogInfo(ctx, "Ledger computed", slog.String("account_id", accountID), slog.Int("row_count", len(rows)))

	return &dto.LedgerResponse{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		NormalSide:     string(normalSide),
		CurrencyCode:   account.CurrencyCode,
		Rows:           dto.ToLedgerRowResponses(rows),
		ClosingBalance: closing,
	}, nil
}
