package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpston-festival/festival-api/internal/dto"
	"github.com/helpston-festival/festival-api/internal/models"
	"github.com/helpston-festival/festival-api/internal/service"
	"github.com/helpston-festival/festival-api/pkg/ratelimit"
)

type leadStoreStub struct {
	leads   map[string]*models.Lead
	history []models.StatusHistoryEntry
}

func newLeadStoreStub() *leadStoreStub {
	return &leadStoreStub{leads: map[string]*models.Lead{}}
}

func (s *leadStoreStub) Create(_ context.Context, input models.CreateLeadInput) (*models.Lead, error) {
	lead := &models.Lead{
		ID:                "lead-1",
		CompanyName:       input.CompanyName,
		ContactName:       input.ContactName,
		Email:             input.Email,
		InterestedPackage: input.InterestedPackage,
		Status:            models.LeadStatusNew,
	}
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *leadStoreStub) GetByID(_ context.Context, id string) (*models.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return lead, nil
}

func (s *leadStoreStub) List(context.Context, models.LeadFilter) ([]models.Lead, error) {
	out := make([]models.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		out = append(out, *lead)
	}
	return out, nil
}

func (s *leadStoreStub) UpdateStatus(_ context.Context, id string, newStatus models.LeadStatus, _ string) (*models.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	lead.Status = newStatus
	return lead, nil
}

func (s *leadStoreStub) SetNotes(_ context.Context, id, notes string) (*models.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	lead.InternalNotes = &notes
	return lead, nil
}

func (s *leadStoreStub) Archive(_ context.Context, id string) (*models.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	lead.Status = models.LeadStatusArchived
	return lead, nil
}

func (s *leadStoreStub) Restore(_ context.Context, id string) (*models.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	lead.Status = models.LeadStatusNew
	return lead, nil
}

func (s *leadStoreStub) History(context.Context, string) ([]models.StatusHistoryEntry, error) {
	return s.history, nil
}

func (s *leadStoreStub) Stats(context.Context) (*models.LeadStats, error) {
	return &models.LeadStats{Total: len(s.leads)}, nil
}

func newSubmitHandler(store *leadStoreStub) *LeadHandler {
	limiter := ratelimit.NewMemoryLimiter(ratelimit.Options{})
	return NewLeadHandler(service.NewLeadService(store, limiter, nil))
}

func postEnquiry(t *testing.T, handler *LeadHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/sponsorship/enquiries", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handler.Submit(c)
	return w
}

func TestLeadHandlerSubmitCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newLeadStoreStub()
	handler := newSubmitHandler(store)

	w := postEnquiry(t, handler, `{"companyName":"Acme Brewing","contactName":"Jane Smith","email":"jane@acme.co.uk","package":"gold","consent":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.SubmitLeadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, service.ThankYouMessage, resp.Message)
	assert.Len(t, store.leads, 1)
}

func TestLeadHandlerSubmitValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newLeadStoreStub()
	handler := newSubmitHandler(store)

	w := postEnquiry(t, handler, `{"companyName":"A","consent":false}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.SubmitLeadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "companyName")
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "general")
	assert.Empty(t, store.leads)
}

func TestLeadHandlerSubmitMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSubmitHandler(newLeadStoreStub())

	w := postEnquiry(t, handler, `{"companyName":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.SubmitLeadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Errors["general"])
}

func TestLeadHandlerSubmitRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSubmitHandler(newLeadStoreStub())

	body := `{"companyName":"Acme Brewing","contactName":"Jane Smith","email":"jane@acme.co.uk","package":"gold","consent":true}`
	for i := 0; i < 5; i++ {
		w := postEnquiry(t, handler, body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := postEnquiry(t, handler, body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp dto.SubmitLeadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Too many submissions. Please try again later.", resp.Errors["general"])
}
