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

// reconciliationHandler handles on-demand reconciliation requests. The engine
// never runs automatically and never mutates state.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
	currencyCode          string
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade, currencyCode string) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs, currencyCode: currencyCode}
}

// registerReconciliationRoutes registers the reconciliation endpoints.
func registerReconciliationRoutes(rg *gin.RouterGroup, rs portssvc.ReconciliationSvcFacade, currencyCode string) {
	h := newReconciliationHandler(rs, currencyCode)

	rg.POST("/reconcile", h.reconcile)
	rg.POST("/asset-deltas", h.assetDeltas)
}

// reconcile compares actual vs recorded change between two balance snapshots.
func (h *reconciliationHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.reconciliationService.Reconcile(c.Request.Context(), req.OldSnapshotID, req.NewSnapshotID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to reconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReconcileResponse(result, h.currencyCode))
}

// assetDeltas reports how each currently registered asset moved between two
// asset snapshots.
func (h *reconciliationHandler) assetDeltas(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AssetDeltasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for assetDeltas", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deltas, err := h.reconciliationService.AssetDeltas(c.Request.Context(), req.OldSnapshotID, req.NewSnapshotID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute asset deltas", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute asset deltas"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetDeltaListResponse(deltas, h.currencyCode))
}
