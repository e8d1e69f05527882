package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkit/parkit-auth/internal/core/domain"
	"github.com/parkit/parkit-auth/internal/transport/http/middleware"
	"github.com/parkit/parkit-auth/internal/usecase"
)

// AuthHandler exposes login and token introspection endpoints.
type AuthHandler struct {
	auth *usecase.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes binds the authentication routes on r.
func (h *AuthHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/login", h.Login)
	r.GET("/me", middleware.RequireAuth(h.auth), h.Me)
}

// Login godoc
// @Summary Authenticate a user
// @Description Validates email and password and returns a signed access token valid for four hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body middleware.LoginCredentials true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} OutcomeResponse
// @Failure 401 {object} OutcomeResponse
// @Failure 403 {object} OutcomeResponse
// @Failure 429 {object} OutcomeResponse
// @Failure 500 {object} OutcomeResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	body, err := middleware.LoginBody(c)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: result.AccessToken, User: result.User})
}

// Me godoc
// @Summary Current user
// @Description Returns the identity carried by the bearer token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} OutcomeResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		respondOutcome(c, domain.Failure(domain.KindJWTInvalid, nil))
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:       claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		LastName: claims.LastName,
		RoleID:   claims.RoleID,
		StatusID: claims.StatusID,
	})
}
