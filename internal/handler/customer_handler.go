package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// CustomerHandler exposes customer and branch endpoints.
type CustomerHandler struct {
	customers *service.CustomerService
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Create godoc
// @Summary Onboard a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param payload body models.CreateCustomerRequest true "Customer payload"
// @Success 201 {object} response.Envelope
// @Router /customer/create [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	customer, err := h.customers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "customer created", customer)
}

// List godoc
// @Summary List customers
// @Tags Customers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /customer/list [get]
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "customers fetched", customers)
}

// Get godoc
// @Summary Get a customer
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Envelope
// @Router /customer/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "customer fetched", customer)
}

// Update godoc
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param payload body models.UpdateCustomerRequest true "Customer payload"
// @Success 200 {object} response.Envelope
// @Router /customer/update/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	customer, err := h.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "customer updated", customer)
}

// Delete godoc
// @Summary Delete a customer
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Envelope
// @Router /customer/delete/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "customer deleted", nil)
}

// CreateBranch godoc
// @Summary Add a branch to a customer
// @Tags Branches
// @Accept json
// @Produce json
// @Param payload body models.CreateBranchRequest true "Branch payload"
// @Success 201 {object} response.Envelope
// @Router /branch/create [post]
func (h *CustomerHandler) CreateBranch(c *gin.Context) {
	var req models.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	branch, err := h.customers.CreateBranch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "branch created", branch)
}

// ListBranches godoc
// @Summary List branches
// @Tags Branches
// @Produce json
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} response.Envelope
// @Router /branch/list [get]
func (h *CustomerHandler) ListBranches(c *gin.Context) {
	customerID, err := queryID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	branches, err := h.customers.ListBranches(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "branches fetched", branches)
}

// UpdateBranch godoc
// @Summary Update a branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param id path int true "Branch ID"
// @Param payload body models.UpdateBranchRequest true "Branch payload"
// @Success 200 {object} response.Envelope
// @Router /branch/update/{id} [put]
func (h *CustomerHandler) UpdateBranch(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	branch, err := h.customers.UpdateBranch(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "branch updated", branch)
}

// DeleteBranch godoc
// @Summary Delete a branch
// @Tags Branches
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {object} response.Envelope
// @Router /branch/delete/{id} [delete]
func (h *CustomerHandler) DeleteBranch(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.customers.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "branch deleted", nil)
}
