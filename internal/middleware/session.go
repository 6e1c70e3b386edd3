package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/netinfo"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// Context keys set by the session middleware.
const (
	// ContextAdminIDKey stores the authenticated admin's id.
	ContextAdminIDKey = "adminID"
	// ContextClientInfoKey stores the caller's IP info for audit logging.
	ContextClientInfoKey = "clientInfo"
)

// sessionCredentials is the body shape the middleware peeks at on POST/PUT.
type sessionCredentials struct {
	AdminID json.Number `json:"admin_id"`
	Token   string      `json:"_token"`
}

// Session authenticates every request against the stored session token and
// rotates it when expired. Credentials travel as `admin_id` + `_token` query
// parameters on GET/DELETE and as body fields on POST/PUT; the body is
// buffered and restored so handlers can bind it again. The token to echo is
// placed on the context for the response envelope.
func Session(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, token, err := extractCredentials(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		echoToken, err := sessions.ValidateAndRotate(c.Request.Context(), adminID, token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdminIDKey, adminID)
		c.Set(response.ContextTokenKey, echoToken)
		c.Set(ContextClientInfoKey, netinfo.FromRequest(c.Request))
		c.Next()
	}
}

// AdminID returns the authenticated admin id from the context.
func AdminID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextAdminIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// ClientInfo returns the caller's IP info captured at session validation.
func ClientInfo(c *gin.Context) netinfo.ClientInfo {
	if v, ok := c.Get(ContextClientInfoKey); ok {
		if info, ok := v.(netinfo.ClientInfo); ok {
			return info
		}
	}
	return netinfo.FromRequest(c.Request)
}

func extractCredentials(c *gin.Context) (int64, string, error) {
	if idParam := c.Query("admin_id"); idParam != "" {
		adminID, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return 0, "", appErrors.Clone(appErrors.ErrInvalidToken, "admin id must be numeric")
		}
		return adminID, c.Query("_token"), nil
	}

	if c.Request.Body == nil {
		return 0, "", appErrors.Clone(appErrors.ErrInvalidToken, "admin id and token are required")
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return 0, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read request body")
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var creds sessionCredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return 0, "", appErrors.Clone(appErrors.ErrValidation, "request body must be valid JSON")
	}

	adminID, err := creds.AdminID.Int64()
	if err != nil || adminID <= 0 {
		return 0, "", appErrors.Clone(appErrors.ErrInvalidToken, "admin id and token are required")
	}
	return adminID, creds.Token, nil
}
