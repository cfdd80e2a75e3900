package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpston-festival/festival-api/internal/service"
	"github.com/helpston-festival/festival-api/pkg/response"
)

// ContentHandler serves the editorial content collections.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler constructs ContentHandler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Sponsors godoc
// @Summary List festival sponsors
// @Tags Content
// @Produce json
// @Param includeInactive query bool false "Include inactive sponsors"
// @Success 200 {object} response.Envelope
// @Router /content/sponsors [get]
func (h *ContentHandler) Sponsors(c *gin.Context) {
	activeOnly := c.Query("includeInactive") != "true"
	sponsors, err := h.content.Sponsors(activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sponsors, nil)
}

// Packages godoc
// @Summary List sponsorship packages
// @Tags Content
// @Produce json
// @Param includeUnavailable query bool false "Include sold-out packages"
// @Success 200 {object} response.Envelope
// @Router /content/sponsorship-packages [get]
func (h *ContentHandler) Packages(c *gin.Context) {
	availableOnly := c.Query("includeUnavailable") != "true"
	packages, err := h.content.Packages(availableOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, packages, nil)
}

// Charities godoc
// @Summary List supported charities
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content/charities [get]
func (h *ContentHandler) Charities(c *gin.Context) {
	charities, err := h.content.Charities()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, charities, nil)
}

// ImpactReports godoc
// @Summary List annual impact reports
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content/impact-reports [get]
func (h *ContentHandler) ImpactReports(c *gin.Context) {
	reports, err := h.content.ImpactReports()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// GalleryAlbums godoc
// @Summary List gallery albums
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content/gallery [get]
func (h *ContentHandler) GalleryAlbums(c *gin.Context) {
	albums, err := h.content.GalleryAlbums()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, albums, nil)
}

// GalleryAlbum godoc
// @Summary Get a gallery album by year
// @Tags Content
// @Produce json
// @Param year path string true "Album year"
// @Success 200 {object} response.Envelope
// @Router /content/gallery/{year} [get]
func (h *ContentHandler) GalleryAlbum(c *gin.Context) {
	album, err := h.content.GalleryAlbum(c.Param("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, album, nil)
}

// SiteSettings godoc
// @Summary Get site-wide settings
// @Tags Content
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /content/site-settings [get]
func (h *ContentHandler) SiteSettings(c *gin.Context) {
	settings, err := h.content.SiteSettings()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}
