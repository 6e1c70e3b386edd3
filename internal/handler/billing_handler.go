package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// BillingHandler serves one billing contact collection. A handler instance is
// bound to its contact type at registration time, so the SPOC, escalation,
// escalation-manager and authorized-detail routes share one implementation.
type BillingHandler struct {
	billing     *service.BillingService
	contactType models.BillingContactType
}

// NewBillingHandler constructs BillingHandler for the given contact type.
func NewBillingHandler(billing *service.BillingService, contactType models.BillingContactType) *BillingHandler {
	return &BillingHandler{billing: billing, contactType: contactType}
}

// Create godoc
// @Summary Create a billing contact
// @Tags Billing
// @Accept json
// @Produce json
// @Param payload body models.BillingContactRequest true "Contact payload"
// @Success 201 {object} response.Envelope
// @Router /{contact}/create [post]
func (h *BillingHandler) Create(c *gin.Context) {
	var req models.BillingContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	contact, err := h.billing.Create(c.Request.Context(), h.contactType, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.contactType.Label()+" created", contact)
}

// List godoc
// @Summary List billing contacts
// @Tags Billing
// @Produce json
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} response.Envelope
// @Router /{contact}/list [get]
func (h *BillingHandler) List(c *gin.Context) {
	customerID, err := queryID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	contacts, err := h.billing.List(c.Request.Context(), h.contactType, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.contactType.Label()+" list fetched", contacts)
}

// Update godoc
// @Summary Update a billing contact
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param payload body models.BillingContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Router /{contact}/update/{id} [put]
func (h *BillingHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.BillingContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	contact, err := h.billing.Update(c.Request.Context(), h.contactType, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.contactType.Label()+" updated", contact)
}

// Delete godoc
// @Summary Delete a billing contact
// @Tags Billing
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} response.Envelope
// @Router /{contact}/delete/{id} [delete]
func (h *BillingHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.billing.Delete(c.Request.Context(), h.contactType, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.contactType.Label()+" deleted", nil)
}
