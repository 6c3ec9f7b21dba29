package repositories

import (
	"context"
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
)

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a journal entry header by ID.
	// Returns apperrors.ErrNotFound when no such entry exists.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of one entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a page of entries ordered by (journal date,
	// created_at) descending using token-based pagination. It returns the
	// entries, a token for the next page (nil on the last page), and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations for journal entry data.
type EntryWriter interface {
	// SaveEntry persists a new draft entry and its lines atomically.
	// Returns apperrors.ErrDuplicateEntryNumber on entry number collision.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateDraftEntry updates the mutable header fields (date,
	// description, reference) of a draft entry and, when lines is
	// non-nil, replaces all of its lines. Header and lines commit in one
	// transaction, so a failed line rewrite never leaves a half-applied
	// header behind. Fails with apperrors.ErrStaleState when the entry is
	// no longer a draft.
	UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// TransitionEntryStatus moves an entry from an expected status to a new
	// one with an optimistic conditional update: only the writer that still
	// observes the expected status wins. Fails with apperrors.ErrStaleState
	// when the status already changed, leaving state untouched.
	TransitionEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, updatedBy string, updatedAt time.Time) error
}

// LedgerReader defines read access to posted lines for balance computation.
type LedgerReader interface {
	// ListLedgerLines retrieves the lines of POSTED entries hitting one
	// account within [from, to]. Lines of draft or cancelled entries are
	// excluded here so the accumulator never sees them. Line descriptions
	// fall back to the entry description.
	ListLedgerLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error)
}

// EntryRepositoryFacade combines all journal-entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	LedgerReader
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction control.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
