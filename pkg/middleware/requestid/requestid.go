package requestid

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the correlation ID between the portal frontend and the API.
const Header = "X-Request-ID"

const ctxKey = "request_id"

// maxInboundLen guards against abusive client-supplied IDs.
const maxInboundLen = 64

// Middleware propagates an inbound request ID or mints a fresh one, so every
// log line for a request can be correlated.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sanitize(c.GetHeader(Header))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ctxKey, id)
		c.Writer.Header().Set(Header, id)
		c.Next()
	}
}

// Value returns the request ID for the current request, or "" outside the
// middleware chain.
func Value(c *gin.Context) string {
	id, _ := c.Value(ctxKey).(string)
	return id
}

func sanitize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxInboundLen {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return ""
		}
	}
	return raw
}
