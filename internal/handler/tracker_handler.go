package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/middleware"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// TrackerHandler serves the client master tracker endpoints.
type TrackerHandler struct {
	tracker *service.TrackerService
}

// NewTrackerHandler constructs TrackerHandler.
func NewTrackerHandler(tracker *service.TrackerService) *TrackerHandler {
	return &TrackerHandler{tracker: tracker}
}

// Submit godoc
// @Summary Submit a tracker form
// @Tags Tracker
// @Accept json
// @Produce json
// @Param payload body models.TrackerSubmitRequest true "Tracker form payload"
// @Success 201 {object} response.Envelope
// @Router /client-tracker/submit [post]
func (h *TrackerHandler) Submit(c *gin.Context) {
	var req models.TrackerSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	submission, err := h.tracker.Submit(c.Request.Context(), middleware.AdminID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "tracker form submitted", submission)
}

// List godoc
// @Summary List tracker submissions
// @Tags Tracker
// @Produce json
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} response.Envelope
// @Router /client-tracker/list [get]
func (h *TrackerHandler) List(c *gin.Context) {
	customerID, err := queryID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	submissions, err := h.tracker.List(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "tracker submissions fetched", submissions)
}

// Get godoc
// @Summary Fetch a tracker submission
// @Tags Tracker
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} response.Envelope
// @Router /client-tracker/{id} [get]
func (h *TrackerHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	submission, err := h.tracker.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "tracker submission fetched", submission)
}

// Delete godoc
// @Summary Delete a tracker submission
// @Tags Tracker
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} response.Envelope
// @Router /client-tracker/delete/{id} [delete]
func (h *TrackerHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.tracker.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "tracker submission deleted", nil)
}
