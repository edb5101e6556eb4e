package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbook/finbook-backend/internal/apperrors"
	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/dto"
	"github.com/finbook/finbook-backend/internal/middleware"
)

// entryHandler handles HTTP requests for the ledger entry log.
type entryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	currencyCode  string
}

func newEntryHandler(ls portssvc.LedgerSvcFacade, currencyCode string) *entryHandler {
	return &entryHandler{ledgerService: ls, currencyCode: currencyCode}
}

// registerEntryRoutes registers routes related to ledger entries.
func registerEntryRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, currencyCode string) {
	h := newEntryHandler(ls, currencyCode)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/summary", h.summarize)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry appends a new ledger entry.
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.AppendEntry(c.Request.Context(), req)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to append entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	resp := dto.ToEntryResponse(entry, h.currencyCode)
	resp.Warning = persistWarning(err)
	c.JSON(http.StatusCreated, resp)
}

// listEntries returns entries, optionally within the half-open [from, to)
// window supplied as RFC3339 query parameters.
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time window: " + err.Error()})
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryListResponse(entries, h.currencyCode))
}

// summarize reports recorded income/expense/net over a window. Transfers are
// excluded from both sums.
func (h *entryHandler) summarize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time window: " + err.Error()})
		return
	}

	income, expense, err := h.ledgerService.Summarize(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to summarize entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize entries"})
		return
	}

	net := income.Sub(expense)
	c.JSON(http.StatusOK, dto.EntrySummaryResponse{
		Income:         int64(income),
		Expense:        int64(expense),
		Net:            int64(net),
		IncomeDisplay:  income.Major(),
		ExpenseDisplay: expense.Major(),
		NetDisplay:     net.Major(),
	})
}

// deleteEntry removes an entry; absent ids succeed (idempotent).
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	err := h.ledgerService.DeleteEntry(c.Request.Context(), entryID)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		logger.Error("Failed to delete entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	if w := persistWarning(err); w != "" {
		c.JSON(http.StatusOK, gin.H{"warning": w})
		return
	}
	c.Status(http.StatusNoContent)
}
