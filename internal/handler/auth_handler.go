package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpston-festival/festival-api/internal/dto"
	"github.com/helpston-festival/festival-api/internal/service"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
	"github.com/helpston-festival/festival-api/pkg/response"
)

// AuthHandler wires the admin session endpoints to the auth service.
type AuthHandler struct {
	auth         *service.AdminAuthService
	cookieSecure bool
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(auth *service.AdminAuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// Login godoc
// @Summary Authenticate the administrator
// @Description Exchanges the shared admin password for a session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} dto.AdminActionResponse
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	token, err := h.auth.Login(req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	maxAge := int(h.auth.SessionTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.AdminSessionCookie, token, maxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, dto.AdminActionResponse{Success: true})
}

// Logout godoc
// @Summary End the admin session
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.AdminActionResponse
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.AdminSessionCookie, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, dto.AdminActionResponse{Success: true})
}

// Session godoc
// @Summary Check the current admin session
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.AdminActionResponse
// @Failure 401 {object} response.Envelope
// @Router /admin/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	token, err := c.Cookie(service.AdminSessionCookie)
	if err != nil || token == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.auth.ValidateSession(token); err != nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, dto.AdminActionResponse{Success: true})
}
