package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parkit/parkit-auth/internal/usecase"
)

// ParkingHandler exposes parking provider pre-enrollment.
type ParkingHandler struct {
	parkings *usecase.ParkingService
}

func NewParkingHandler(parkings *usecase.ParkingService) *ParkingHandler {
	return &ParkingHandler{parkings: parkings}
}

// RegisterRoutes binds the parking routes on r.
func (h *ParkingHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/pre-enroll", h.PreEnroll)
}

// PreEnroll godoc
// @Summary Pre-enroll a parking provider
// @Description Stores a parking application. An external id is generated when no internal id is given.
// @Tags parking
// @Accept json
// @Produce json
// @Param request body PreEnrollRequest true "Parking application"
// @Success 201 {object} PreEnrollResponse
// @Failure 400 {object} OutcomeResponse
// @Failure 409 {object} OutcomeResponse
// @Failure 500 {object} OutcomeResponse
// @Router /api/v1/parking/pre-enroll [post]
func (h *ParkingHandler) PreEnroll(c *gin.Context) {
	var req PreEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validatePhone(req.Phone); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validateInternalID(req.InternalID); err != nil {
		respondBadRequest(c, err)
		return
	}

	parking, err := h.parkings.PreEnroll(c.Request.Context(), usecase.PreEnrollInput{
		LegalRepresentative: strings.TrimSpace(req.LegalRepresentative),
		NitDV:               strings.TrimSpace(req.NitDV),
		Phone:               req.Phone,
		Email:               strings.TrimSpace(req.Email),
		Address:             strings.TrimSpace(req.Address),
		City:                req.City,
		Neighborhood:        strings.TrimSpace(req.Neighborhood),
		HasBranches:         *req.HasBranches,
		NumberOfBranches:    *req.NumberOfBranches,
		CompanyName:         strings.TrimSpace(req.CompanyName),
		DocumentType:        strings.TrimSpace(req.DocumentType),
		DocumentNumber:      strings.TrimSpace(req.DocumentNumber),
		InternalID:          req.InternalID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PreEnrollResponse{
		LegalRepresentative: parking.LegalRepresentative,
		CompanyName:         parking.CompanyName,
		ExternalID:          parking.ExternalID,
		InternalID:          parking.InternalID,
	})
}
