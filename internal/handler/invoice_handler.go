package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// InvoiceHandler serves the invoice master and expense tracker endpoints.
type InvoiceHandler struct {
	invoices *service.InvoiceService
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// Create godoc
// @Summary Create an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param payload body models.InvoiceRequest true "Invoice payload"
// @Success 201 {object} response.Envelope
// @Router /invoice-master/create [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	invoice, err := h.invoices.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "invoice created", invoice)
}

// List godoc
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} response.Envelope
// @Router /invoice-master/list [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	customerID, err := queryID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	invoices, err := h.invoices.List(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "invoices fetched", invoices)
}

// Get godoc
// @Summary Fetch an invoice
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} response.Envelope
// @Router /invoice-master/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "invoice fetched", invoice)
}

// Update godoc
// @Summary Update an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param payload body models.InvoiceRequest true "Invoice payload"
// @Success 200 {object} response.Envelope
// @Router /invoice-master/update/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	invoice, err := h.invoices.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "invoice updated", invoice)
}

// Delete godoc
// @Summary Delete an invoice
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} response.Envelope
// @Router /invoice-master/delete/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "invoice deleted", nil)
}

// ExportPDF godoc
// @Summary Download an invoice as PDF
// @Tags Invoices
// @Produce application/pdf
// @Param id path int true "Invoice ID"
// @Success 200 {file} binary
// @Router /invoice-master/{id}/pdf [get]
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, filename, err := h.invoices.ExportPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ExportCSV godoc
// @Summary Download the invoice register as CSV
// @Tags Invoices
// @Produce text/csv
// @Param customer_id query int false "Filter by customer"
// @Success 200 {file} file
// @Router /invoice-master/export [get]
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	customerID, err := queryID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	data, filename, err := h.invoices.ExportCSV(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// CreateExpense godoc
// @Summary Record an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param payload body models.ExpenseRequest true "Expense payload"
// @Success 201 {object} response.Envelope
// @Router /expense-tracker/create [post]
func (h *InvoiceHandler) CreateExpense(c *gin.Context) {
	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	expense, err := h.invoices.CreateExpense(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "expense recorded", expense)
}

// ListExpenses godoc
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /expense-tracker/list [get]
func (h *InvoiceHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.invoices.ListExpenses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "expenses fetched", expenses)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param payload body models.ExpenseRequest true "Expense payload"
// @Success 200 {object} response.Envelope
// @Router /expense-tracker/update/{id} [put]
func (h *InvoiceHandler) UpdateExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	expense, err := h.invoices.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "expense updated", expense)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} response.Envelope
// @Router /expense-tracker/delete/{id} [delete]
func (h *InvoiceHandler) DeleteExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.invoices.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "expense deleted", nil)
}

// ExportExpensesCSV godoc
// @Summary Download expenses as CSV
// @Tags Expenses
// @Produce text/csv
// @Success 200 {file} binary
// @Router /expense-tracker/export [get]
func (h *InvoiceHandler) ExportExpensesCSV(c *gin.Context) {
	data, filename, err := h.invoices.ExportExpensesCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
