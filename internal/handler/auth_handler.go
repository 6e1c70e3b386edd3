package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/middleware"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/internal/service"
	appErrors "github.com/vanshwebstep/screeningstar-admin-api/pkg/errors"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/netinfo"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/response"
)

// AuthHandler exposes login, OTP verification, logout, and password reset
// endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Authenticate an admin
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	info := netinfo.FromRequest(c.Request)
	req.IP = info.IP
	req.IPVersion = info.IPVersion

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.OTPRequired {
		response.OK(c, "OTP sent", result)
		return
	}
	response.OK(c, "login successful", result)
}

// VerifyOTP godoc
// @Summary Complete a two-factor login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.VerifyOTPRequest true "Verification code"
// @Success 200 {object} response.Envelope
// @Router /admin/verify-two-factor [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	info := netinfo.FromRequest(c.Request)
	req.IP = info.IP
	req.IPVersion = info.IPVersion

	result, err := h.auth.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "login successful", result)
}

// Logout godoc
// @Summary Clear the active session
// @Tags Auth
// @Produce json
// @Param admin_id query int true "Admin ID"
// @Param _token query string true "Session token"
// @Success 200 {object} response.Envelope
// @Router /admin/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	info := middleware.ClientInfo(c)
	if err := h.auth.Logout(c.Request.Context(), middleware.AdminID(c), info.IP, info.IPVersion); err != nil {
		response.Error(c, err)
		return
	}
	// The cleared token must not be echoed back.
	c.Set(response.ContextTokenKey, "")
	response.OK(c, "logout successful", nil)
}

// ForgotPassword godoc
// @Summary Mail a password reset link
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} response.Envelope
// @Router /admin/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "password reset link sent", nil)
}

// ResetPassword godoc
// @Summary Set a new password from a reset link
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} response.Envelope
// @Router /admin/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "password updated", nil)
}
