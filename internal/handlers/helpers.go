package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbook/finbook-backend/internal/apperrors"
)

// persistWarning returns the user-visible warning for a mutation that was
// applied in memory but not persisted, or "" for any other (or nil) error.
// Persist failures are non-fatal: the caller has already observed the state
// change, storage is just behind.
func persistWarning(err error) string {
	if err != nil && errors.Is(err, apperrors.ErrPersist) {
		return "change applied but not saved to storage: " + err.Error()
	}
	return ""
}

// parseWindow reads optional RFC3339 "from"/"to" query parameters.
func parseWindow(c *gin.Context) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
