package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/helpston-festival/festival-api/internal/dto"
	"github.com/helpston-festival/festival-api/internal/models"
	"github.com/helpston-festival/festival-api/internal/repository"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
	"github.com/helpston-festival/festival-api/pkg/ratelimit"
)

// ThankYouMessage acknowledges a successful enquiry.
const ThankYouMessage = "Thank you for your interest! We will be in touch soon."

const maxNotesLength = 5000

type leadStore interface {
	Create(ctx context.Context, input models.CreateLeadInput) (*models.Lead, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)
	UpdateStatus(ctx context.Context, id string, newStatus models.LeadStatus, changedBy string) (*models.Lead, error)
	SetNotes(ctx context.Context, id, notes string) (*models.Lead, error)
	Archive(ctx context.Context, id string) (*models.Lead, error)
	Restore(ctx context.Context, id string) (*models.Lead, error)
	History(ctx context.Context, leadID string) ([]models.StatusHistoryEntry, error)
	Stats(ctx context.Context) (*models.LeadStats, error)
}

type leadMetrics interface {
	LeadSubmitted()
	LeadRejected(reason string)
}

// LeadService runs the intake pipeline (validate, rate limit, persist)
// and the admin lifecycle operations.
type LeadService struct {
	store   leadStore
	limiter ratelimit.Limiter
	metrics leadMetrics
	logger  *zap.Logger
}

// LeadServiceOption configures the service.
type LeadServiceOption func(*LeadService)

// WithLeadMetrics attaches a metrics recorder.
func WithLeadMetrics(m leadMetrics) LeadServiceOption {
	return func(s *LeadService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewLeadService constructs the service.
func NewLeadService(store leadStore, limiter ratelimit.Limiter, logger *zap.Logger, opts ...LeadServiceOption) *LeadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &LeadService{
		store:   store,
		limiter: limiter,
		metrics: nopLeadMetrics{},
		logger:  logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Submit validates a form submission, applies the rate limit and
// persists a new lead. Validation failures come back as a field error
// map; rate limiting and storage failures as typed errors.
func (s *LeadService) Submit(ctx context.Context, req dto.SubmitLeadRequest) (*models.Lead, dto.FieldErrors, error) {
	input, fieldErrs := ValidateLeadSubmission(req)
	if len(fieldErrs) > 0 {
		s.metrics.LeadRejected("validation")
		return nil, fieldErrs, nil
	}

	allowed, err := s.limiter.Allow(ctx, strings.ToLower(input.Email))
	if err != nil {
		// A broken limiter backend must not block legitimate
		// submissions; log and continue.
		s.logger.Warn("rate limiter unavailable", zap.Error(err))
		allowed = true
	}
	if !allowed {
		s.metrics.LeadRejected("rate_limited")
		return nil, nil, appErrors.ErrRateLimited
	}

	lead, err := s.store.Create(ctx, input)
	if err != nil {
		s.logger.Error("failed to create lead", zap.Error(err))
		s.metrics.LeadRejected("storage")
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.metrics.LeadSubmitted()
	s.logger.Info("lead created",
		zap.String("id", lead.ID),
		zap.String("company", lead.CompanyName),
		zap.String("package", lead.InterestedPackage),
	)
	return lead, nil, nil
}

// List returns leads matching the query.
func (s *LeadService) List(ctx context.Context, query dto.LeadQuery) ([]models.Lead, error) {
	leads, err := s.store.List(ctx, query.Filter())
	if err != nil {
		s.logger.Error("failed to list leads", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return leads, nil
}

// Get fetches one lead.
func (s *LeadService) Get(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "fetch lead")
	}
	return lead, nil
}

// UpdateStatus changes a lead's workflow status. The new value must be
// one of the six defined statuses; unconventional transitions among
// valid statuses are logged but not rejected.
func (s *LeadService) UpdateStatus(ctx context.Context, id string, newStatus models.LeadStatus, changedBy string) (*models.Lead, error) {
	if !newStatus.IsValid() {
		return nil, appErrors.ErrInvalidStatus
	}
	if changedBy == "" {
		changedBy = "admin"
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "fetch lead for status update")
	}
	if !models.CanTransition(current.Status, newStatus) {
		s.logger.Warn("unconventional status transition",
			zap.String("id", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(newStatus)),
		)
	}

	lead, err := s.store.UpdateStatus(ctx, id, newStatus, changedBy)
	if err != nil {
		return nil, s.storeError(err, "update lead status")
	}
	return lead, nil
}

// SetNotes replaces the internal notes on a lead.
func (s *LeadService) SetNotes(ctx context.Context, id, notes string) (*models.Lead, error) {
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return nil, appErrors.ErrNotesTooLong
	}
	lead, err := s.store.SetNotes(ctx, id, notes)
	if err != nil {
		return nil, s.storeError(err, "set lead notes")
	}
	return lead, nil
}

// Archive soft-deletes a lead.
func (s *LeadService) Archive(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.store.Archive(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "archive lead")
	}
	return lead, nil
}

// Restore returns an archived lead to the pipeline with status "new".
func (s *LeadService) Restore(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.store.Restore(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "restore lead")
	}
	return lead, nil
}

// History returns the status audit trail for a lead.
func (s *LeadService) History(ctx context.Context, id string) ([]models.StatusHistoryEntry, error) {
	entries, err := s.store.History(ctx, id)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrHistoryUnsupported.Code {
			return nil, err
		}
		return nil, s.storeError(err, "fetch lead history")
	}
	return entries, nil
}

// Stats summarises lead counts by status.
func (s *LeadService) Stats(ctx context.Context) (*models.LeadStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to compute lead stats", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return stats, nil
}

func (s *LeadService) storeError(err error, action string) error {
	if repository.IsNotFound(err) {
		return appErrors.ErrLeadNotFound
	}
	s.logger.Error("lead store failure", zap.String("action", action), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
}

type nopLeadMetrics struct{}

func (nopLeadMetrics) LeadSubmitted()      {}
func (nopLeadMetrics) LeadRejected(string) {}
