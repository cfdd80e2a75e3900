package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpston-festival/festival-api/internal/dto"
	"github.com/helpston-festival/festival-api/internal/service"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
)

// LeadHandler exposes the public sponsorship enquiry endpoint.
type LeadHandler struct {
	leads *service.LeadService
}

// NewLeadHandler constructs LeadHandler.
func NewLeadHandler(leads *service.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// Submit godoc
// @Summary Submit a sponsorship enquiry
// @Description Validates and records a sponsorship enquiry from the public website form
// @Tags Sponsorship
// @Accept json
// @Produce json
// @Param payload body dto.SubmitLeadRequest true "Enquiry payload"
// @Success 201 {object} dto.SubmitLeadResponse
// @Failure 400 {object} dto.SubmitLeadResponse
// @Failure 429 {object} dto.SubmitLeadResponse
// @Router /sponsorship/enquiries [post]
func (h *LeadHandler) Submit(c *gin.Context) {
	var req dto.SubmitLeadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.SubmitLeadResponse{
			Success: false,
			Errors:  dto.FieldErrors{"general": "Invalid request body"},
		})
		return
	}

	_, fieldErrs, err := h.leads.Submit(c.Request.Context(), req)
	if err != nil {
		var appErr *appErrors.Error
		status := http.StatusInternalServerError
		message := appErrors.ErrInternal.Message
		if errors.As(err, &appErr) {
			status = appErr.Status
			message = appErr.Message
		}
		c.JSON(status, dto.SubmitLeadResponse{
			Success: false,
			Errors:  dto.FieldErrors{"general": message},
		})
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, dto.SubmitLeadResponse{
			Success: false,
			Errors:  fieldErrs,
		})
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitLeadResponse{
		Success: true,
		Message: service.ThankYouMessage,
	})
}
