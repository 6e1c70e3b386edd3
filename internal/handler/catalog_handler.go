package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// CatalogHandler exposes the verification service catalog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// IsCodeUnique godoc
// @Summary Check service code availability
// @Tags Services
// @Produce json
// @Param code query string true "Service code"
// @Param exclude_id query int false "Service to exclude from the check"
// @Success 200 {object} response.Envelope
// @Router /service/is-code-unique [get]
func (h *CatalogHandler) IsCodeUnique(c *gin.Context) {
	excludeID, err := queryID(c, "exclude_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	unique, err := h.catalog.IsServiceCodeUnique(c.Request.Context(), c.Query("code"), excludeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "code checked", gin.H{"unique": unique})
}

// CreateService godoc
// @Summary Create a verification service
// @Tags Services
// @Accept json
// @Produce json
// @Param payload body models.ServiceRequest true "Service payload"
// @Success 201 {object} response.Envelope
// @Router /service/create [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	svc, err := h.catalog.CreateService(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "service created", svc)
}

// ListServices godoc
// @Summary List verification services
// @Tags Services
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /service/list [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "services fetched", services)
}

// UpdateService godoc
// @Summary Update a verification service
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param payload body models.ServiceRequest true "Service payload"
// @Success 200 {object} response.Envelope
// @Router /service/update/{id} [put]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	svc, err := h.catalog.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "service updated", svc)
}

// DeleteService godoc
// @Summary Delete a verification service
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} response.Envelope
// @Router /service/delete/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.catalog.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "service deleted", nil)
}

// CreateServiceGroup godoc
// @Summary Create a service group
// @Tags Services
// @Accept json
// @Produce json
// @Param payload body models.ServiceGroupRequest true "Group payload"
// @Success 201 {object} response.Envelope
// @Router /service-group/create [post]
func (h *CatalogHandler) CreateServiceGroup(c *gin.Context) {
	var req models.ServiceGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.catalog.CreateServiceGroup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "service group created", group)
}

// ListServiceGroups godoc
// @Summary List service groups
// @Tags Services
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /service-group/list [get]
func (h *CatalogHandler) ListServiceGroups(c *gin.Context) {
	groups, err := h.catalog.ListServiceGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "service groups fetched", groups)
}

// UpdateServiceGroup godoc
// @Summary Update a service group
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body models.ServiceGroupRequest true "Group payload"
// @Success 200 {object} response.Envelope
// @Router /service-group/update/{id} [put]
func (h *CatalogHandler) UpdateServiceGroup(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.ServiceGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.catalog.UpdateServiceGroup(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "service group updated", group)
}

// DeleteServiceGroup godoc
// @Summary Delete a service group
// @Tags Services
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /service-group/delete/{id} [delete]
func (h *CatalogHandler) DeleteServiceGroup(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.catalog.DeleteServiceGroup(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "service group deleted", nil)
}

// CreatePackage godoc
// @Summary Create a package
// @Tags Packages
// @Accept json
// @Produce json
// @Param payload body models.PackageRequest true "Package payload"
// @Success 201 {object} response.Envelope
// @Router /package/create [post]
func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req models.PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pkg, err := h.catalog.CreatePackage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "package created", pkg)
}

// ListPackages godoc
// @Summary List packages
// @Tags Packages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /package/list [get]
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.catalog.ListPackages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "packages fetched", packages)
}

// UpdatePackage godoc
// @Summary Update a package
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path int true "Package ID"
// @Param payload body models.PackageRequest true "Package payload"
// @Success 200 {object} response.Envelope
// @Router /package/update/{id} [put]
func (h *CatalogHandler) UpdatePackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pkg, err := h.catalog.UpdatePackage(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "package updated", pkg)
}

// DeletePackage godoc
// @Summary Delete a package
// @Tags Packages
// @Produce json
// @Param id path int true "Package ID"
// @Success 200 {object} response.Envelope
// @Router /package/delete/{id} [delete]
func (h *CatalogHandler) DeletePackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.catalog.DeletePackage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "package deleted", nil)
}
