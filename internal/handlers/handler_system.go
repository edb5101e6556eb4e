package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/middleware"
)

// systemHandler handles operational endpoints.
type systemHandler struct {
	services *portssvc.ServiceContainer
}

func newSystemHandler(services *portssvc.ServiceContainer) *systemHandler {
	return &systemHandler{services: services}
}

// registerSystemRoutes registers the system endpoints.
func registerSystemRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newSystemHandler(services)

	system := rg.Group("/system")
	system.POST("/reload", h.reload)
}

// reload is the external-change notification: something else wrote to
// storage, so every store discards its in-memory state and re-fetches.
// Safe to call repeatedly.
func (h *systemHandler) reload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.services.ReloadAll(c.Request.Context()); err != nil {
		logger.Error("Failed to reload stores", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload stores"})
		return
	}

	logger.Info("All stores reloaded from persistence")
	c.Status(http.StatusNoContent)
}
