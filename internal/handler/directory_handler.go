package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// DirectoryHandler serves one internal contact directory. The same handler
// type backs the vendor, university and organization routes, bound to its
// directory type at registration time.
type DirectoryHandler struct {
	directories *service.DirectoryService
	dirType     models.DirectoryType
}

// NewDirectoryHandler constructs DirectoryHandler for the given directory.
func NewDirectoryHandler(directories *service.DirectoryService, dirType models.DirectoryType) *DirectoryHandler {
	return &DirectoryHandler{directories: directories, dirType: dirType}
}

// Create godoc
// @Summary Create a directory entry
// @Tags Directories
// @Accept json
// @Produce json
// @Param payload body models.DirectoryEntryRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Router /{directory}/create [post]
func (h *DirectoryHandler) Create(c *gin.Context) {
	var req models.DirectoryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.directories.Create(c.Request.Context(), h.dirType, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.dirType.Label()+" created", entry)
}

// List godoc
// @Summary List directory entries
// @Tags Directories
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /{directory}/list [get]
func (h *DirectoryHandler) List(c *gin.Context) {
	entries, err := h.directories.List(c.Request.Context(), h.dirType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.dirType.Label()+" list fetched", entries)
}

// Get godoc
// @Summary Fetch a directory entry
// @Tags Directories
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /{directory}/{id} [get]
func (h *DirectoryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.directories.Get(c.Request.Context(), h.dirType, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.dirType.Label()+" fetched", entry)
}

// Update godoc
// @Summary Update a directory entry
// @Tags Directories
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param payload body models.DirectoryEntryRequest true "Entry payload"
// @Success 200 {object} response.Envelope
// @Router /{directory}/update/{id} [put]
func (h *DirectoryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.DirectoryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.directories.Update(c.Request.Context(), h.dirType, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.dirType.Label()+" updated", entry)
}

// Delete godoc
// @Summary Delete a directory entry
// @Tags Directories
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /{directory}/delete/{id} [delete]
func (h *DirectoryHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.directories.Delete(c.Request.Context(), h.dirType, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.dirType.Label()+" deleted", nil)
}
