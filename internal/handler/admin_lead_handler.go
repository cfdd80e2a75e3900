package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/helpston-festival/festival-api/internal/dto"
	"github.com/helpston-festival/festival-api/internal/models"
	"github.com/helpston-festival/festival-api/internal/service"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
	"github.com/helpston-festival/festival-api/pkg/response"
)

// AdminLeadHandler exposes lead management endpoints for the admin dashboard.
type AdminLeadHandler struct {
	leads  *service.LeadService
	export *service.LeadExportService
}

// NewAdminLeadHandler constructs AdminLeadHandler.
func NewAdminLeadHandler(leads *service.LeadService, export *service.LeadExportService) *AdminLeadHandler {
	return &AdminLeadHandler{leads: leads, export: export}
}

func parseLeadQuery(c *gin.Context) dto.LeadQuery {
	var query dto.LeadQuery
	if statuses := c.Query("status"); statuses != "" {
		for _, raw := range strings.Split(statuses, ",") {
			status := models.LeadStatus(strings.TrimSpace(raw))
			if status.IsValid() {
				query.Status = append(query.Status, status)
			}
		}
	}
	query.IncludeArchived = c.Query("includeArchived") == "true"
	query.Search = strings.TrimSpace(c.Query("search"))
	query.SortBy = c.Query("sort")
	query.SortOrder = c.Query("order")
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		query.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		query.Offset = offset
	}
	return query
}

// bindError maps a gin binding failure to a client-facing validation
// error, naming the first failed field when the payload was valid JSON.
func bindError(err error, fallback string) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
		if fe.Tag() == "required" {
			msg = fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, msg)
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, fallback)
}

// List godoc
// @Summary List sponsorship leads
// @Tags Admin
// @Produce json
// @Param status query string false "Comma-separated status filter"
// @Param includeArchived query bool false "Include archived leads"
// @Param search query string false "Search company, contact or email"
// @Param sort query string false "Sort column"
// @Param order query string false "Sort order (asc or desc)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.Envelope
// @Router /admin/leads [get]
func (h *AdminLeadHandler) List(c *gin.Context) {
	leads, err := h.leads.List(c.Request.Context(), parseLeadQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leads, nil)
}

// Get godoc
// @Summary Get lead detail
// @Tags Admin
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Envelope
// @Router /admin/leads/{id} [get]
func (h *AdminLeadHandler) Get(c *gin.Context) {
	lead, err := h.leads.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead, nil)
}

// Stats godoc
// @Summary Lead counts by status
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/leads/stats [get]
func (h *AdminLeadHandler) Stats(c *gin.Context) {
	stats, err := h.leads.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// History godoc
// @Summary Lead status history
// @Tags Admin
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Envelope
// @Router /admin/leads/{id}/history [get]
func (h *AdminLeadHandler) History(c *gin.Context) {
	entries, err := h.leads.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// UpdateStatus godoc
// @Summary Change lead status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param payload body dto.UpdateLeadStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /admin/leads/{id}/status [patch]
func (h *AdminLeadHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid status payload"))
		return
	}
	lead, err := h.leads.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, "admin")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead, nil)
}

// SetNotes godoc
// @Summary Replace lead notes
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param payload body dto.UpdateLeadNotesRequest true "Notes payload"
// @Success 200 {object} response.Envelope
// @Router /admin/leads/{id}/notes [put]
func (h *AdminLeadHandler) SetNotes(c *gin.Context) {
	var req dto.UpdateLeadNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid notes payload"))
		return
	}
	lead, err := h.leads.SetNotes(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead, nil)
}

// Archive godoc
// @Summary Archive a lead
// @Tags Admin
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Envelope
// @Router /admin/leads/{id}/archive [post]
func (h *AdminLeadHandler) Archive(c *gin.Context) {
	lead, err := h.leads.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead, nil)
}

// Restore godoc
// @Summary Restore an archived lead
// @Tags Admin
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Envelope
// @Router /admin/leads/{id}/restore [post]
func (h *AdminLeadHandler) Restore(c *gin.Context) {
	lead, err := h.leads.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lead, nil)
}

// Export godoc
// @Summary Download leads as CSV or PDF
// @Tags Admin
// @Produce text/csv
// @Param format query string false "csv or pdf" default(csv)
// @Param status query string false "Comma-separated status filter"
// @Param includeArchived query bool false "Include archived leads"
// @Success 200 {file} file
// @Router /admin/leads/export [get]
func (h *AdminLeadHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	result, err := h.export.Export(c.Request.Context(), parseLeadQuery(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
