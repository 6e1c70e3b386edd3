package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
)

// Activity records an activity-log row after each request on the gated
// route. Writes are dispatched to the audit queue and never block or fail
// the request.
func Activity(audit *service.AuditService, module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		result := models.LogResultSuccess
		errMsg := ""
		if c.Writer.Status() >= 400 {
			result = models.LogResultFailure
			if len(c.Errors) > 0 {
				errMsg = c.Errors.String()
			}
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		info := ClientInfo(c)
		audit.RecordActivity(models.ActivityLog{
			AdminID:   AdminID(c),
			Module:    module,
			Action:    action,
			Result:    result,
			Payload:   string(payload),
			Error:     errMsg,
			IP:        info.IP,
			IPVersion: info.IPVersion,
		})
	}
}
