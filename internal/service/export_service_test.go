package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpston-festival/festival-api/internal/dto"
	"github.com/helpston-festival/festival-api/internal/models"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
)

func TestLeadExportServiceCSV(t *testing.T) {
	store := newLeadStoreStub()
	phone := "07700900000"
	store.leads["acme-inc"] = &models.Lead{
		ID:                "acme-inc",
		CompanyName:       "Acme, Inc.",
		ContactName:       "Jane Smith",
		Email:             "jane@acme.co.uk",
		Phone:             &phone,
		InterestedPackage: "gold",
		Status:            models.LeadStatusNew,
		CreatedAt:         time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2026, 6, 2, 9, 30, 0, 0, time.UTC),
	}
	svc := NewLeadExportService(store, 0, nil)

	result, err := svc.Export(context.Background(), dto.LeadQuery{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, fmt.Sprintf("sponsor-leads-%s.csv", time.Now().UTC().Format("2006-01-02")), result.Filename)

	records, err := csv.NewReader(bytes.NewReader(result.Payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"ID", "Company Name", "Contact Name", "Email", "Phone", "Interested Package",
		"Message", "Referral Source", "Status", "Internal Notes", "Created At", "Updated At",
	}, records[0])

	row := records[1]
	assert.Equal(t, "Acme, Inc.", row[1])
	assert.Equal(t, "07700900000", row[4])
	assert.Equal(t, "", row[6])
	assert.Equal(t, "new", row[8])
	assert.Equal(t, "2026-06-01", row[10])
	assert.Equal(t, "2026-06-02", row[11])

	// Embedded comma must be quoted in the raw output.
	assert.Contains(t, string(result.Payload), `"Acme, Inc."`)
}

func TestLeadExportServiceEmptySetStillHasHeaders(t *testing.T) {
	svc := NewLeadExportService(newLeadStoreStub(), 0, nil)

	result, err := svc.Export(context.Background(), dto.LeadQuery{}, "")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(result.Payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ID", records[0][0])
}

func TestLeadExportServicePDF(t *testing.T) {
	store := newLeadStoreStub()
	store.leads["acme"] = &models.Lead{
		ID:                "acme",
		CompanyName:       "Acme Brewing",
		ContactName:       "Jane Smith",
		Email:             "jane@acme.co.uk",
		InterestedPackage: "gold",
		Status:            models.LeadStatusConfirmed,
	}
	svc := NewLeadExportService(store, 0, nil)

	result, err := svc.Export(context.Background(), dto.LeadQuery{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")))
}

func TestLeadExportServiceUnknownFormat(t *testing.T) {
	svc := NewLeadExportService(newLeadStoreStub(), 0, nil)

	_, err := svc.Export(context.Background(), dto.LeadQuery{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
