package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/helpston-festival/festival-api/internal/dto"
	"github.com/helpston-festival/festival-api/internal/models"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
	"github.com/helpston-festival/festival-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// Column order is fixed; consumers rely on it.
var exportHeaders = []string{
	"ID",
	"Company Name",
	"Contact Name",
	"Email",
	"Phone",
	"Interested Package",
	"Message",
	"Referral Source",
	"Status",
	"Internal Notes",
	"Created At",
	"Updated At",
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered export ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// LeadExportService renders the lead set to downloadable documents.
type LeadExportService struct {
	store   leadStore
	csv     csvRenderer
	pdf     pdfRenderer
	maxRows int
	logger  *zap.Logger
}

// NewLeadExportService constructs the service.
func NewLeadExportService(store leadStore, maxRows int, logger *zap.Logger) *LeadExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = 10000
	}
	return &LeadExportService{
		store:   store,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		maxRows: maxRows,
		logger:  logger,
	}
}

// Export fetches the filtered lead set and renders it in the requested
// format (csv by default).
func (s *LeadExportService) Export(ctx context.Context, query dto.LeadQuery, format string) (*ExportResult, error) {
	filter := query.Filter()
	filter.Limit = s.maxRows
	filter.Offset = 0

	leads, err := s.store.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to fetch leads for export", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	dataset := buildLeadDataset(leads)
	stamp := time.Now().UTC().Format("2006-01-02")

	switch strings.ToLower(format) {
	case "", ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("sponsor-leads-%s.csv", stamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Sponsor Leads")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("sponsor-leads-%s.pdf", stamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildLeadDataset(leads []models.Lead) export.Dataset {
	rows := make([]map[string]string, 0, len(leads))
	for i := range leads {
		lead := &leads[i]
		rows = append(rows, map[string]string{
			"ID":                 lead.ID,
			"Company Name":       lead.CompanyName,
			"Contact Name":       lead.ContactName,
			"Email":              lead.Email,
			"Phone":              deref(lead.Phone),
			"Interested Package": lead.InterestedPackage,
			"Message":            deref(lead.Message),
			"Referral Source":    deref(lead.ReferralSource),
			"Status":             string(lead.Status),
			"Internal Notes":     deref(lead.InternalNotes),
			"Created At":         formatExportDate(lead.CreatedAt),
			"Updated At":         formatExportDate(lead.UpdatedAt),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func formatExportDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
