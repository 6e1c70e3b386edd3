package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// RequireAction gates a route on a single permission action. Runs after
// Session, which put the admin id on the context. The super-admin role
// passes every gate; everyone else needs the exact action flag set true.
func RequireAction(sessions *service.SessionService, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := AdminID(c)
		if adminID == 0 {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		allowed, err := sessions.IsAuthorizedFor(c.Request.Context(), adminID, action)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "you are not authorized for this action"))
			c.Abort()
			return
		}
		c.Next()
	}
}
