package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
)

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "id must be a positive number")
	}
	return id, nil
}

// queryID parses an optional numeric query parameter, returning zero when
// absent.
func queryID(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive number")
	}
	return id, nil
}
