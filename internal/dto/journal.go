package dto

import (
	"time"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest is one candidate line of a draft entry. Exactly one
// of debit/credit must be positive; the validator enforces it.
type CreateLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines the payload for creating a draft entry with
// its lines in one atomic operation.
type CreateEntryRequest struct {
	EntryNumber  string              `json:"entryNumber" binding:"required"`
	Date         time.Time           `json:"date" binding:"required"`
	Description  string              `json:"description" binding:"required"`
	Reference    string              `json:"reference"`
	CurrencyCode string              `json:"currencyCode" binding:"required,len=3"`
	Lines        []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest defines the mutable fields of a draft entry.
// A non-nil Lines slice replaces all existing lines.
type UpdateEntryRequest struct {
	Date        *time.Time          `json:"date"`
	Description *string             `json:"description"`
	Reference   *string             `json:"reference"`
	Lines       []CreateLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// LineResponse defines the data returned for an entry line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference,omitempty"`
	CurrencyCode string          `json:"currencyCode"`
	Status       string          `json:"status"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Lines        []LineResponse  `json:"lines,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ValidationResult reports the outcome of a dry-run validation. The core
// computes it; what to do with a failed result is the caller's decision.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ListEntriesParams holds parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the next-page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.JournalLine to its response DTO.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToEntryResponse converts a domain.JournalEntry to its response DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		Date:         e.JournalDate,
		Description:  e.Description,
		Reference:    e.Reference,
		CurrencyCode: e.CurrencyCode,
		Status:       string(e.Status),
		TotalDebits:  e.TotalDebits(),
		TotalCredits: e.TotalCredits(),
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}
