package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-app/openbooks_backend/internal/core/ports/repositories"
	"github.com/openbooks-app/openbooks_backend/internal/models"
	"github.com/openbooks-app/openbooks_backend/internal/utils/mapping"
	"github.com/openbooks-app/openbooks_backend/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, entry_number, journal_date, description, reference, currency_code, status, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.JournalDate,
		&m.Description,
		&m.Reference,
		&m.CurrencyCode,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Description,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveEntry persists a new entry header and its lines in one transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelJournalEntry(entry)

	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.EntryNumber,
		m.JournalDate,
		m.Description,
		m.Reference,
		m.CurrencyCode,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "journal_entries_entry_number_key") {
			return fmt.Errorf("%w: entry number %s", apperrors.ErrDuplicateEntryNumber, entry.EntryNumber)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, entry.EntryID)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+m.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to query entry "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of one entry in insertion order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return lines, nil
}

// ListEntries retrieves a page of entries ordered by (journal_date,
// created_at) descending using token-based pagination.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	var args []interface{}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastJournalDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable across equal dates.
		query += ` WHERE (journal_date, created_at) < ($1, $2)`
		args = append(args, lastJournalDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	fetched := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		fetched = append(fetched, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextTokenVal *string
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &token
		fetched = fetched[:limit]
	}

	entries := make([]domain.JournalEntry, len(fetched))
	for i, m := range fetched {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// UpdateDraftEntry updates the header of a draft entry and, when lines is
// non-nil, replaces all of its lines inside the same transaction. A failed
// line rewrite rolls back the header change with it.
func (r *PgxEntryRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelJournalEntry(entry)

	// Re-check the status inside the transaction with a row lock so a
	// concurrent post cannot slip between the check and the rewrite.
	var status models.EntryStatus
	guardQuery := `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, guardQuery, m.EntryID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entry.EntryID)
		}
		return apperrors.NewAppError(500, "failed to lock entry "+m.EntryID, err)
	}
	if status != models.EntryStatus(domain.Draft) {
		return fmt.Errorf("%w: entry %s is %s, not a draft", apperrors.ErrStaleState, entry.EntryID, status)
	}

	headerQuery := `
		UPDATE journal_entries
		SET journal_date = $2, description = $3, reference = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.JournalDate,
		m.Description,
		m.Reference,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+m.EntryID, err)
	}

	if lines != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
			return apperrors.NewAppError(500, "failed to delete lines for entry "+m.EntryID, err)
		}

		batch := &pgx.Batch{}
		queueLineInserts(batch, lines)

		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert replacement lines for entry "+m.EntryID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit update of entry "+m.EntryID, err)
	}
	return nil
}

// TransitionEntryStatus moves an entry between statuses with an optimistic
// conditional update: only the writer that still observes the expected
// status wins, everybody else gets ErrStaleState and the row is untouched.
func (r *PgxEntryRepository) TransitionEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		entryID,
		models.EntryStatus(from),
		models.EntryStatus(to),
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to transition entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the entry is gone or another writer changed the status first.
		var current models.EntryStatus
		checkErr := r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&current)
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return fmt.Errorf("%w: entry %s expected %s, found %s", apperrors.ErrStaleState, entryID, from, current)
	}
	return nil
}

// ListLedgerLines retrieves the lines of POSTED entries hitting one account
// within [from, to]. Draft and cancelled entries never reach the accumulator.
func (r *PgxEntryRepository) ListLedgerLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.journal_date, e.entry_number,
		       COALESCE(NULLIF(l.description, ''), e.description) AS description,
		       l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
		  AND e.status = 'POSTED'
		  AND e.journal_date >= $2 AND e.journal_date <= $3
		ORDER BY e.journal_date ASC, e.entry_number ASC, l.created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines for account "+accountID, err)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		var line domain.LedgerLine
		err := rows.Scan(
			&line.JournalDate,
			&line.EntryNumber,
			&line.Description,
			&line.Debit,
			&line.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line for account "+accountID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger lines for account "+accountID, err)
	}
	return lines, nil
}
