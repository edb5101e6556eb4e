package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/middleware"
	"github.com/finbook/finbook-backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg)

	setupAPIV1Routes(r, cfg, services)
}

// registerAuthRoutes wires the public, rate-limited login endpoint.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		// Misconfigured rate limit falls back to a conservative default.
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	loginLimiter := limiter.New(memorystore.NewStore(), rate)

	h := newAuthHandler(cfg)
	auth := r.Group("/auth", middleware.RateLimit(loginLimiter))
	auth.POST("/login", h.login)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerEntryRoutes(v1, services.Ledger, cfg.CurrencyCode)
	registerWalletRoutes(v1, services.Wallet)
	registerSnapshotRoutes(v1, services.Snapshot, cfg.CurrencyCode)
	registerAssetRoutes(v1, services.Asset, services.AssetSnapshot, cfg.CurrencyCode)
	registerReconciliationRoutes(v1, services.Reconciliation, cfg.CurrencyCode)
	registerSystemRoutes(v1, services)
}
