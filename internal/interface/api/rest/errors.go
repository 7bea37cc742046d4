package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "quickdrop-api/internal/domain/share"
)

// respondError maps a service error to its boundary status. Storage
// faults surface as a generic failure and are logged with context; no
// internals leak to the caller.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, domain.ErrExpired):
		c.JSON(http.StatusGone, gin.H{"error": "access code has expired"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
	default:
		if ve, ok := domain.AsValidation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		logger.Error(op+" error", zap.Error(err))
	}
}
