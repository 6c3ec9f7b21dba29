package services

import (
	"context"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries.
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines lifecycle operations for journal entries.
type EntryWriterSvc interface {
	// CreateEntry persists a new draft entry with its lines atomically.
	// Structural line checks run at creation; the full double-entry
	// validation gate runs again at posting time.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry updates the header and optionally replaces the
	// lines of a DRAFT entry. Posted and cancelled entries are immutable.
	UpdateDraftEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// ValidateEntry runs the double-entry validation on an entry without
	// changing anything, reporting the outcome as a ValidationResult.
	ValidateEntry(ctx context.Context, entryID string) (*dto.ValidationResult, error)

	// PostEntry transitions DRAFT -> POSTED after validation. Fails with
	// apperrors.ErrStaleState when another writer won the transition.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// CancelEntry transitions DRAFT/POSTED -> CANCELLED. A cancelled
	// entry contributes nothing to ledger balances.
	CancelEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
}

// EntrySvcFacade combines all journal-entry service interfaces.
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
