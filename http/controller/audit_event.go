package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nitchakan-dev/filevault/utils"
)

const defaultAuditLimit = 50

// ShowAuditLog lists the most recent audit events, newest first.
func (ctrl *Controller) ShowAuditLog(c *gin.Context) {
	ctx := c.Request.Context()

	limit := defaultAuditLimit
	if val := c.Query("limit"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil || parsed < 1 || parsed > 500 {
			utils.JSON400(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	events, err := ctrl.Repository.AuditEventRepo.FindRecent(limit)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Audit] Failed to list audit events: %v", err)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"events": events, "count": len(events)})
}
