package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// AdminHandler exposes administrator management endpoints.
type AdminHandler struct {
	admins *service.AdminService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admins *service.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// Create godoc
// @Summary Create an administrator
// @Tags Admins
// @Accept json
// @Produce json
// @Param payload body models.CreateAdminRequest true "Admin payload"
// @Success 201 {object} response.Envelope
// @Router /admin/create [post]
func (h *AdminHandler) Create(c *gin.Context) {
	var req models.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	admin, err := h.admins.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "admin created", admin)
}

// List godoc
// @Summary List administrators
// @Tags Admins
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/list [get]
func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.admins.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "admins fetched", admins)
}

// Get godoc
// @Summary Get an administrator
// @Tags Admins
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Envelope
// @Router /admin/{id} [get]
func (h *AdminHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	admin, err := h.admins.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "admin fetched", admin)
}

// Update godoc
// @Summary Update an administrator
// @Tags Admins
// @Accept json
// @Produce json
// @Param id path int true "Admin ID"
// @Param payload body models.UpdateAdminRequest true "Admin payload"
// @Success 200 {object} response.Envelope
// @Router /admin/update/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	admin, err := h.admins.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "admin updated", admin)
}

// Delete godoc
// @Summary Delete an administrator
// @Tags Admins
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Envelope
// @Router /admin/delete/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.admins.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "admin deleted", nil)
}

// UpdatePermissions godoc
// @Summary Replace an administrator's permission flags
// @Tags Permissions
// @Accept json
// @Produce json
// @Param id path int true "Admin ID"
// @Param payload body models.UpdatePermissionsRequest true "Permission flags"
// @Success 200 {object} response.Envelope
// @Router /permission/update/{id} [put]
func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.admins.UpdatePermissions(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "permissions updated", nil)
}

// ListPermissions godoc
// @Summary List the seeded permission action catalog
// @Tags Permissions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /permission/list [get]
func (h *AdminHandler) ListPermissions(c *gin.Context) {
	response.OK(c, "permissions fetched", h.admins.PermissionCatalog())
}
