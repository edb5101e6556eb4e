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

// assetHandler handles HTTP requests for the asset registry and asset
// snapshots.
type assetHandler struct {
	assetService    portssvc.AssetSvcFacade
	snapshotService portssvc.AssetSnapshotSvcFacade
	currencyCode    string
}

func newAssetHandler(as portssvc.AssetSvcFacade, ss portssvc.AssetSnapshotSvcFacade, currencyCode string) *assetHandler {
	return &assetHandler{assetService: as, snapshotService: ss, currencyCode: currencyCode}
}

// registerAssetRoutes registers routes related to assets and asset snapshots.
func registerAssetRoutes(rg *gin.RouterGroup, as portssvc.AssetSvcFacade, ss portssvc.AssetSnapshotSvcFacade, currencyCode string) {
	h := newAssetHandler(as, ss, currencyCode)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/networth", h.netWorth)
		assets.PUT("/:id", h.updateAsset)
		assets.PUT("/:id/balance", h.updateBalance)
		assets.DELETE("/:id", h.deleteAsset)
	}

	snapshots := rg.Group("/asset-snapshots")
	{
		snapshots.POST("", h.captureAssetSnapshot)
		snapshots.GET("", h.listAssetSnapshots)
		snapshots.GET("/latest", h.latestAssetSnapshot)
	}
}

func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), req)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create asset", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}

	resp := dto.ToAssetResponse(asset, h.currencyCode)
	resp.Warning = persistWarning(err)
	c.JSON(http.StatusCreated, resp)
}

func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	assets, err := h.assetService.ListAssets(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list assets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assets"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetListResponse(assets, h.currencyCode))
}

// netWorth reports the live derived aggregates for dashboards. Snapshot
// history keeps its own frozen values.
func (h *assetHandler) netWorth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	totalAssets, totalLiabilities, netWorth, err := h.assetService.NetWorth(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute net worth", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute net worth"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNetWorthResponse(totalAssets, totalLiabilities, netWorth, h.currencyCode))
}

func (h *assetHandler) updateAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), assetID, req)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update asset", slog.String("asset_id", assetID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		}
		return
	}

	resp := dto.ToAssetResponse(asset, h.currencyCode)
	resp.Warning = persistWarning(err)
	c.JSON(http.StatusOK, resp)
}

// updateBalance sets an asset's live balance; no snapshot required.
func (h *assetHandler) updateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	var req dto.UpdateAssetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.assetService.UpdateBalance(c.Request.Context(), assetID, domain.Money(req.Balance))
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update asset balance", slog.String("asset_id", assetID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update balance"})
		return
	}

	resp := dto.ToAssetResponse(asset, h.currencyCode)
	resp.Warning = persistWarning(err)
	c.JSON(http.StatusOK, resp)
}

func (h *assetHandler) deleteAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	err := h.assetService.DeleteAsset(c.Request.Context(), assetID)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to delete asset", slog.String("asset_id", assetID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		return
	}

	if w := persistWarning(err); w != "" {
		c.JSON(http.StatusOK, gin.H{"warning": w})
		return
	}
	c.Status(http.StatusNoContent)
}

// captureAssetSnapshot freezes every live asset balance plus the aggregates.
func (h *assetHandler) captureAssetSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snap, err := h.snapshotService.Capture(c.Request.Context())
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		logger.Error("Failed to capture asset snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture asset snapshot"})
		return
	}

	resp := dto.ToAssetSnapshotResponse(snap, h.currencyCode)
	resp.Warning = persistWarning(err)
	c.JSON(http.StatusCreated, resp)
}

func (h *assetHandler) listAssetSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snaps, err := h.snapshotService.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list asset snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list asset snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetSnapshotListResponse(snaps, h.currencyCode))
}

func (h *assetHandler) latestAssetSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snap, err := h.snapshotService.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No asset snapshots captured yet"})
			return
		}
		logger.Error("Failed to get latest asset snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get latest asset snapshot"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetSnapshotResponse(snap, h.currencyCode))
}
