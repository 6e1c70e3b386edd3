package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/storage"
)

// UploadHandler serves the internal document storage endpoints: multipart
// upload, signed link generation and token-gated download.
type UploadHandler struct {
	uploads *storage.UploadStorage
	signer  *storage.SignedURLSigner
	storage *service.StorageService
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(uploads *storage.UploadStorage, signer *storage.SignedURLSigner, storageSvc *service.StorageService) *UploadHandler {
	return &UploadHandler{uploads: uploads, signer: signer, storage: storageSvc}
}

// Upload godoc
// @Summary Upload a document
// @Tags Storage
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to store"
// @Param directory formData string false "Target directory"
// @Success 201 {object} response.Envelope
// @Router /storage/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	record, err := h.storage.Store(c.Request.Context(), file, c.PostForm("directory"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "file uploaded", record)
}

// SignLink godoc
// @Summary Generate a signed download link
// @Tags Storage
// @Produce json
// @Param record_id query string true "Owning record identifier"
// @Param path query string true "Stored file path"
// @Success 200 {object} response.Envelope
// @Router /storage/sign [get]
func (h *UploadHandler) SignLink(c *gin.Context) {
	token, expiresAt, err := h.signer.Generate(c.Query("record_id"), c.Query("path"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "record_id and path are required"))
		return
	}
	response.OK(c, "link generated", gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Download streams a stored file referenced by a signed token. The token
// carries its own authentication, so this route sits outside the session
// middleware.
//
// @Summary Download a stored document
// @Tags Storage
// @Produce application/octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /storage/download [get]
func (h *UploadHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	_, relPath, _, err := h.signer.Parse(token, false)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, http.StatusUnauthorized, "invalid or expired download token"))
		return
	}
	f, err := h.uploads.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrNotFound.Code, http.StatusNotFound, "file not found"))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrStorage.Code, http.StatusInternalServerError, "file unavailable"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(relPath)))
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", f, nil)
}
