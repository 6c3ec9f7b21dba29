package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	portssvc "github.com/openbooks-app/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
	"github.com/openbooks-app/openbooks_backend/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	entryService portssvc.EntrySvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(es portssvc.EntrySvcFacade) *journalHandler {
	return &journalHandler{
		entryService: es,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newJournalHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.POST("/:id/validate", h.validateEntry)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/cancel", h.cancelEntry)
	}
}

// respondEntryError maps service errors onto HTTP statuses shared by the
// entry lifecycle endpoints.
func respondEntryError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, apperrors.ErrDuplicateEntryNumber):
		logger.Warn("Entry number already taken", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStaleState):
		logger.Warn("Entry state changed concurrently", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Entry state conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Entry validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a journal entry in DRAFT status with its lines in one atomic operation. Drafts may be unbalanced; the balance gate runs at posting.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Entry number already taken"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("actor", actor), slog.String("entry_number", req.EntryNumber))
	logger.Info("Received request to create entry", slog.Int("line_count", len(req.Lines)))

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondEntryError(c, logger, "create entry", err)
		return
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries ordered by journal date descending with token-based pagination.
// @Tags entries
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == 400 {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondEntryError(c, logger, "retrieve entry", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Updates the header and optionally replaces the lines of a DRAFT entry. Posted and cancelled entries are immutable.
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not an editable draft"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Router /entries/{id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("entry_id", entryID), slog.String("actor", actor))

	entry, err := h.entryService.UpdateDraftEntry(c.Request.Context(), entryID, req, actor)
	if err != nil {
		respondEntryError(c, logger, "update entry", err)
		return
	}

	logger.Info("Entry updated")
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// validateEntry godoc
// @Summary Validate a journal entry without posting it
// @Description Runs the full double-entry validation and reports the outcome. Nothing is persisted.
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.ValidationResult
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to validate entry"
// @Router /entries/{id}/validate [post]
func (h *journalHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	result, err := h.entryService.ValidateEntry(c.Request.Context(), entryID)
	if err != nil {
		respondEntryError(c, logger, "validate entry", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Transitions a DRAFT entry to POSTED after it passes the full validation gate. Posted entries are immutable and contribute to ledger balances.
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Entry fails validation"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Illegal transition or concurrent state change"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entries/{id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("entry_id", entryID), slog.String("actor", actor))

	entry, err := h.entryService.PostEntry(c.Request.Context(), entryID, actor)
	if err != nil {
		respondEntryError(c, logger, "post entry", err)
		return
	}

	logger.Info("Entry posted")
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a journal entry
// @Description Transitions a DRAFT or POSTED entry to CANCELLED. Cancelled entries stop contributing to ledger balances.
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Illegal transition or concurrent state change"
// @Failure 500 {object} map[string]string "Failed to cancel entry"
// @Router /entries/{id}/cancel [post]
func (h *journalHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("entry_id", entryID), slog.String("actor", actor))

	entry, err := h.entryService.CancelEntry(c.Request.Context(), entryID, actor)
	if err != nil {
		respondEntryError(c, logger, "cancel entry", err)
		return
	}

	logger.Info("Entry cancelled")
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
