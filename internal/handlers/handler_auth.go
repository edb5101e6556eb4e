package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/finbook/finbook-backend/internal/dto"
	"github.com/finbook/finbook-backend/internal/middleware"
	"github.com/finbook/finbook-backend/pkg/config"
)

// authHandler exchanges the single configured credential for a JWT.
type authHandler struct {
	cfg *config.Config
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{cfg: cfg}
}

// login validates the configured credential pair and issues a signed token.
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if h.cfg.APIPassword == "" {
		logger.Error("Login attempted but API_PASSWORD is not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Login is not configured"})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.APIUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.APIPassword)) == 1
	if !userOK || !passOK {
		logger.Warn("Invalid credentials on login")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   h.cfg.APIUsername,
		Issuer:    h.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.JWTExpiryDuration)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("Login successful")
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.cfg.JWTExpiryDuration.Seconds()),
	})
}
