package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parkit/parkit-auth/internal/usecase"
)

// PasswordHandler exposes the password recovery endpoint.
type PasswordHandler struct {
	reset *usecase.PasswordResetService
}

func NewPasswordHandler(reset *usecase.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{reset: reset}
}

// ForgotPassword godoc
// @Summary Send a password reset link
// @Description Emails a reset link valid for 15 minutes to platform users.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} OutcomeResponse
// @Failure 400 {object} OutcomeResponse
// @Failure 401 {object} OutcomeResponse
// @Failure 403 {object} OutcomeResponse
// @Failure 429 {object} OutcomeResponse
// @Failure 502 {object} OutcomeResponse
// @Router /api/v1/auth/forgot-password [post]
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	out, err := h.reset.ForgotPassword(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOutcome(c, out)
}
