package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

// Envelope is the common response contract. Every authenticated success
// carries the session token the client must present on its next call.
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Token   string      `json:"token,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// ContextTokenKey is the gin context key under which the session middleware
// stores the token to echo back to the client.
const ContextTokenKey = "sessionToken"

// JSON sends a success response, echoing the rotated session token when the
// middleware placed one on the context.
func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
		Token:   tokenFromContext(c),
	})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Error sends an error response converting the error to the common envelope.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{
		Status:  false,
		Message: appErr.Message,
		Code:    appErr.Code,
	})
}

func tokenFromContext(c *gin.Context) string {
	if v, exists := c.Get(ContextTokenKey); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
