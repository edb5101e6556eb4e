package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbook/finbook-backend/internal/apperrors"
	"github.com/finbook/finbook-backend/internal/core/domain"
	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/dto"
	"github.com/finbook/finbook-backend/internal/middleware"
)

// snapshotHandler handles HTTP requests for balance snapshots.
type snapshotHandler struct {
	snapshotService portssvc.BalanceSnapshotSvcFacade
	currencyCode    string
}

func newSnapshotHandler(ss portssvc.BalanceSnapshotSvcFacade, currencyCode string) *snapshotHandler {
	return &snapshotHandler{snapshotService: ss, currencyCode: currencyCode}
}

// registerSnapshotRoutes registers routes related to balance snapshots.
func registerSnapshotRoutes(rg *gin.RouterGroup, ss portssvc.BalanceSnapshotSvcFacade, currencyCode string) {
	h := newSnapshotHandler(ss, currencyCode)

	snapshots := rg.Group("/snapshots")
	{
		snapshots.POST("", h.captureSnapshot)
		snapshots.GET("", h.listSnapshots)
		snapshots.GET("/latest", h.latestSnapshot)
	}
}

// captureSnapshot records a new point-in-time capture of wallet balances.
func (h *snapshotHandler) captureSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CaptureSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for captureSnapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	balances := make(map[string]domain.Money, len(req.Balances))
	for id, b := range req.Balances {
		balances[id] = domain.Money(b)
	}

	snap, err := h.snapshotService.Capture(c.Request.Context(), balances)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		logger.Error("Failed to capture snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture snapshot"})
		return
	}

	resp := dto.ToBalanceSnapshotResponse(snap, h.currencyCode)
	resp.Warning = persistWarning(err)
	c.JSON(http.StatusCreated, resp)
}

func (h *snapshotHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snaps, err := h.snapshotService.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSnapshotListResponse(snaps, h.currencyCode))
}

// latestSnapshot returns the current-truth snapshot, or 404 before the first
// capture.
func (h *snapshotHandler) latestSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snap, err := h.snapshotService.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No snapshots captured yet"})
			return
		}
		logger.Error("Failed to get latest snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get latest snapshot"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSnapshotResponse(snap, h.currencyCode))
}
