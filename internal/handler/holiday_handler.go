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

// HolidayHandler serves the holiday calendar and daily activity endpoints.
type HolidayHandler struct {
	holidays *service.HolidayService
}

// NewHolidayHandler constructs HolidayHandler.
func NewHolidayHandler(holidays *service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidays: holidays}
}

// Create godoc
// @Summary Create a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body models.HolidayRequest true "Holiday payload"
// @Success 201 {object} response.Envelope
// @Router /holiday/create [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var req models.HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	holiday, err := h.holidays.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "holiday created", holiday)
}

// List godoc
// @Summary List holidays
// @Tags Holidays
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /holiday/list [get]
func (h *HolidayHandler) List(c *gin.Context) {
	holidays, err := h.holidays.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "holidays fetched", holidays)
}

// Update godoc
// @Summary Update a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param id path int true "Holiday ID"
// @Param payload body models.HolidayRequest true "Holiday payload"
// @Success 200 {object} response.Envelope
// @Router /holiday/update/{id} [put]
func (h *HolidayHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	holiday, err := h.holidays.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "holiday updated", holiday)
}

// Delete godoc
// @Summary Delete a holiday
// @Tags Holidays
// @Produce json
// @Param id path int true "Holiday ID"
// @Success 200 {object} response.Envelope
// @Router /holiday/delete/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.holidays.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "holiday deleted", nil)
}

// CreateActivity godoc
// @Summary Record a daily activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param payload body models.DailyActivityRequest true "Activity payload"
// @Success 201 {object} response.Envelope
// @Router /daily-activity/create [post]
func (h *HolidayHandler) CreateActivity(c *gin.Context) {
	var req models.DailyActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	activity, err := h.holidays.CreateActivity(c.Request.Context(), middleware.AdminID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "daily activity recorded", activity)
}

// ListActivities godoc
// @Summary List daily activities
// @Tags Activities
// @Produce json
// @Param filter_admin_id query int false "Filter by admin"
// @Success 200 {object} response.Envelope
// @Router /daily-activity/list [get]
func (h *HolidayHandler) ListActivities(c *gin.Context) {
	adminID, err := queryID(c, "filter_admin_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	activities, err := h.holidays.ListActivities(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "daily activities fetched", activities)
}

// UpdateActivity godoc
// @Summary Update a daily activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param payload body models.DailyActivityRequest true "Activity payload"
// @Success 200 {object} response.Envelope
// @Router /daily-activity/update/{id} [put]
func (h *HolidayHandler) UpdateActivity(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.DailyActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	activity, err := h.holidays.UpdateActivity(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "daily activity updated", activity)
}

// DeleteActivity godoc
// @Summary Delete a daily activity
// @Tags Activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} response.Envelope
// @Router /daily-activity/delete/{id} [delete]
func (h *HolidayHandler) DeleteActivity(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.holidays.DeleteActivity(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "daily activity deleted", nil)
}
