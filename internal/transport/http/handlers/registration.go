package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parkit/parkit-auth/internal/usecase"
)

// RegistrationHandler exposes user sign up.
type RegistrationHandler struct {
	registration *usecase.RegistrationService
}

func NewRegistrationHandler(registration *usecase.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

// Register godoc
// @Summary Register a new user account
// @Description Creates an active user. Email and user name must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegistrationRequest true "Registration payload"
// @Success 201 {object} RegistrationResponse
// @Failure 400 {object} OutcomeResponse
// @Failure 409 {object} OutcomeResponse
// @Failure 500 {object} OutcomeResponse
// @Router /api/v1/auth/register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			req.Phone = nil
		} else if err := validatePhone(phone); err != nil {
			respondBadRequest(c, err)
			return
		} else {
			req.Phone = &phone
		}
	}

	user, err := h.registration.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		LastName: strings.TrimSpace(req.LastName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    req.Phone,
		UserName: strings.TrimSpace(req.UserName),
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegistrationResponse{UserID: user.ID, User: user.Plain()})
}
