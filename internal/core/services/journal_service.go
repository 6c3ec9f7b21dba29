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
	"github.com/openbooks-app/openbooks_backend/internal/utils/accounting"
)

// journalService implements journal entry lifecycle operations: draft
// creation and editing, the double-entry validation gate, and the
// Draft -> Posted -> Cancelled state machine.
type journalService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewJournalService creates a new journal entry service.
func NewJournalService(entryRepo portsrepo.EntryRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.EntrySvcFacade {
	return &journalService{
		entryRepo:   entryRepo,
		accountSvc:  accountSvc,
		currencySvc: currencySvc,
	}
}

var _ portssvc.EntrySvcFacade = (*journalService)(nil)

// buildLines converts request lines to domain lines, enforcing the
// per-line invariants that must hold even while the entry is a draft:
// known active account, matching currency, debit/credit exclusivity,
// no empty or negative lines, amounts representable at the currency's
// precision. Balance is not checked here; drafts may be unbalanced
// until the posting gate.
func (s *journalService) buildLines(ctx context.Context, entryID string, currency domain.Currency, reqLines []dto.CreateLineRequest, userID string, now time.Time) ([]domain.JournalLine, error) {
	accountIDs := make([]string, 0, len(reqLines))
	for _, line := range reqLines {
		accountIDs = append(accountIDs, line.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	lines := make([]domain.JournalLine, len(reqLines))
	for i, reqLine := range reqLines {
		acc, found := accounts[reqLine.AccountID]
		if !found || !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrUnknownAccount, reqLine.AccountID)
		}
		if acc.CurrencyCode != currency.CurrencyCode {
			return nil, fmt.Errorf("%w: account %s is %s, entry is %s",
				apperrors.ErrCurrencyMismatch, reqLine.AccountID, acc.CurrencyCode, currency.CurrencyCode)
		}
		if reqLine.Debit.IsPositive() && reqLine.Credit.IsPositive() {
			return nil, fmt.Errorf("%w: line for account %s", apperrors.ErrMixedLine, reqLine.AccountID)
		}
		if reqLine.Debit.IsNegative() || reqLine.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line for account %s has a negative amount", apperrors.ErrEmptyLine, reqLine.AccountID)
		}
		if reqLine.Debit.IsZero() && reqLine.Credit.IsZero() {
			return nil, fmt.Errorf("%w: line for account %s", apperrors.ErrEmptyLine, reqLine.AccountID)
		}
		if _, err := domain.NewMoney(reqLine.Debit, currency); err != nil {
			return nil, err
		}
		if _, err := domain.NewMoney(reqLine.Credit, currency); err != nil {
			return nil, err
		}

		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   reqLine.AccountID,
			Debit:       reqLine.Debit,
			Credit:      reqLine.Credit,
			Description: reqLine.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines, nil
}

// CreateEntry creates a new draft entry with its lines in one atomic
// repository operation. The entry number is human-assigned and unique;
// it becomes final when the entry is posted.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if len(req.Lines) < 2 {
		return nil, apperrors.ErrMinLines
	}

	currency, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %s is not registered", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := s.buildLines(ctx, entryID, *currency, req.Lines, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		EntryNumber:  req.EntryNumber,
		JournalDate:  req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		CurrencyCode: currency.CurrencyCode,
		Status:       domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateEntryNumber) {
			s.LogError(ctx, err, "Failed to save entry", slog.String("entry_number", req.EntryNumber))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Draft entry created", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}

	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// UpdateDraftEntry updates the header and optionally replaces the lines
// of a DRAFT entry. Posted entries are immutable; cancelled entries are void.
func (s *journalService) UpdateDraftEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if !entry.IsEditable() {
		return nil, fmt.Errorf("%w: entry %s is %s, only drafts can be edited",
			apperrors.ErrConflict, entryID, entry.Status)
	}

	now := time.Now().UTC()

	headerUpdated := false
	if req.Date != nil {
		entry.JournalDate = *req.Date
		headerUpdated = true
	}
	if req.Description != nil {
		entry.Description = *req.Description
		headerUpdated = true
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
		headerUpdated = true
	}

	var lines []domain.JournalLine
	if req.Lines != nil {
		currency, err := s.currencySvc.GetCurrencyByCode(ctx, entry.CurrencyCode)
		if err != nil {
			return nil, err
		}
		lines, err = s.buildLines(ctx, entryID, *currency, req.Lines, userID, now)
		if err != nil {
			return nil, err
		}
	}

	if headerUpdated || lines != nil {
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID
		// Header and lines commit together; a failed rewrite leaves the
		// entry exactly as it was.
		if err := s.entryRepo.UpdateDraftEntry(ctx, *entry, lines); err != nil {
			if !errors.Is(err, apperrors.ErrStaleState) {
				s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
			}
			return nil, err
		}
	}

	if lines != nil {
		entry.Lines = lines
	} else {
		existing, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
		}
		entry.Lines = existing
	}

	s.LogInfo(ctx, "Draft entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// validate runs the pure double-entry validation against a fully loaded entry.
func (s *journalService) validate(ctx context.Context, entry *domain.JournalEntry) error {
	accountIDs := make([]string, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}

	return accounting.ValidateEntry(*entry, accounts)
}

// ValidateEntry runs the validation gate without changing anything and
// reports the outcome. The caller decides what to do with the result.
func (s *journalService) ValidateEntry(ctx context.Context, entryID string) (*dto.ValidationResult, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return &dto.ValidationResult{Valid: false, Error: err.Error()}, nil
		}
		return nil, err
	}

	return &dto.ValidationResult{Valid: true}, nil
}

// PostEntry transitions a freshly-read DRAFT entry to POSTED after the
// validation gate passes. The conditional status update in the repository
// serializes concurrent attempts: the loser gets apperrors.ErrStaleState
// and may re-read and retry. Once posted, the entry number is final and
// the lines are frozen.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if err := entry.Status.Transition(domain.Posted); err != nil {
		return nil, err
	}

	if err := s.validate(ctx, entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.TransitionEntryStatus(ctx, entryID, domain.Draft, domain.Posted, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrStaleState) {
			s.LogWarn(ctx, "Lost posting race for entry", slog.String("entry_id", entryID))
		} else {
			s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// CancelEntry transitions an entry to CANCELLED. Cancelling a posted
// entry removes its contribution from every derived ledger balance, since
// balance reads only consider POSTED entries. Cancelled is terminal.
func (s *journalService) CancelEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if err := entry.Status.Transition(domain.Cancelled); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.TransitionEntryStatus(ctx, entryID, entry.Status, domain.Cancelled, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrStaleState) {
			s.LogWarn(ctx, "Lost cancellation race for entry", slog.String("entry_id", entryID))
		} else {
			s.LogError(ctx, err, "Failed to cancel entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Status = domain.Cancelled
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Entry cancelled", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
