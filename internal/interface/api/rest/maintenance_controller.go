package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickdrop-api/internal/application/ports"
)

// MaintenanceController exposes the scheduled-cleanup trigger; calling
// it on any cadence is safe since an expiry pass is idempotent.
type MaintenanceController struct {
	reaper ports.Reaper
	logger *zap.Logger
}

func NewMaintenanceController(
	r *gin.Engine,
	reaper ports.Reaper,
	logger *zap.Logger,
) *MaintenanceController {
	mc := &MaintenanceController{
		reaper: reaper,
		logger: logger,
	}

	r.POST(RouteCleanup, mc.CleanupHandler)

	return mc
}

func (mc *MaintenanceController) CleanupHandler(c *gin.Context) {
	deleted, err := mc.reaper.Reap(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		mc.logger.Error("Reap() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "cleanup successful",
		"deleted_shares": deleted,
	})
}
