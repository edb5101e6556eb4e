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

// walletHandler handles HTTP requests for the wallet registry.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, ws portssvc.WalletSvcFacade) {
	h := newWalletHandler(ws)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("", h.listWallets)
		wallets.PUT("/:id", h.updateWallet)
		wallets.DELETE("/:id", h.deleteWallet)
	}
}

func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), req)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		logger.Error("Failed to create wallet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
		return
	}

	resp := dto.ToWalletResponse(wallet)
	resp.Warning = persistWarning(err)
	c.JSON(http.StatusCreated, resp)
}

func (h *walletHandler) listWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	wallets, err := h.walletService.ListWallets(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list wallets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list wallets"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletListResponse(wallets))
}

func (h *walletHandler) updateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.walletService.UpdateWallet(c.Request.Context(), walletID, req)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update wallet", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wallet"})
		return
	}

	resp := dto.ToWalletResponse(wallet)
	resp.Warning = persistWarning(err)
	c.JSON(http.StatusOK, resp)
}

func (h *walletHandler) deleteWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")

	err := h.walletService.DeleteWallet(c.Request.Context(), walletID)
	if err != nil && !errors.Is(err, apperrors.ErrPersist) {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to delete wallet", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wallet"})
		return
	}

	if w := persistWarning(err); w != "" {
		c.JSON(http.StatusOK, gin.H{"warning": w})
		return
	}
	c.Status(http.StatusNoContent)
}
