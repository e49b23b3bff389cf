package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/imgdose/imgdose-api/utils"
)

func (ctrl *Controller) HealthCheck(c *gin.Context) {
	utils.JSON200(c, gin.H{})
}

// StorageHealth probes the object store through the admin API and
// reports cluster-wide object totals.
func (ctrl *Controller) StorageHealth(c *gin.Context) {
	ctx := c.Request.Context()

	usage, err := ctrl.Infra.Minio.DataUsage(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Health] Failed to probe object storage")
		utils.JSON500(c, "Failed to probe object storage.")
		return
	}

	utils.JSON200(c, gin.H{
		"objects":    usage.ObjectsTotalCount,
		"bytes":      usage.ObjectsTotalSize,
		"lastUpdate": usage.LastUpdate,
	})
}
