package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/helpston-festival/festival-api/internal/models"
)

const leadColumns = `id, company_name, contact_name, email, phone, interested_package, message,
       referral_source, status, internal_notes, created_at, updated_at, archived_at`

// LeadRepository persists sponsorship leads in PostgreSQL, with an
// append-only status history table alongside.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository constructs the repository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead with status "new".
func (r *LeadRepository) Create(ctx context.Context, input models.CreateLeadInput) (*models.Lead, error) {
	now := time.Now().UTC()
	lead := &models.Lead{
		ID:                uuid.NewString(),
		CompanyName:       input.CompanyName,
		ContactName:       input.ContactName,
		Email:             input.Email,
		Phone:             nullable(input.Phone),
		InterestedPackage: input.InterestedPackage,
		Message:           nullable(input.Message),
		ReferralSource:    nullable(input.ReferralSource),
		Status:            models.LeadStatusNew,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	const query = `INSERT INTO sponsor_leads
	(id, company_name, contact_name, email, phone, interested_package, message, referral_source, status, internal_notes, created_at, updated_at, archived_at)
	VALUES (:id, :company_name, :contact_name, :email, :phone, :interested_package, :message, :referral_source, :status, :internal_notes, :created_at, :updated_at, :archived_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// GetByID fetches a lead by identifier.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM sponsor_leads WHERE id = $1`
	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, id); err != nil {
		return nil, err
	}
	return &lead, nil
}

// List returns leads matching the filter. Archived leads are excluded
// unless the filter opts in; default order is newest first.
func (r *LeadRepository) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 4)
	builder.WriteString(`SELECT ` + leadColumns + ` FROM sponsor_leads`)

	conditions := make([]string, 0, 3)
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if !filter.IncludeArchived {
		conditions = append(conditions, "archived_at IS NULL")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(company_name ILIKE $%d OR contact_name ILIKE $%d OR email ILIKE $%d)", n, n, n))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}

	builder.WriteString(" ORDER BY ")
	builder.WriteString(sortColumn(filter.SortBy))
	if strings.EqualFold(filter.SortOrder, "asc") {
		builder.WriteString(" ASC")
	} else {
		builder.WriteString(" DESC")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var leads []models.Lead
	if err := r.db.SelectContext(ctx, &leads, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// UpdateStatus changes the lead status and appends a history entry in
// the same transaction so an audit record never goes missing.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, newStatus models.LeadStatus, changedBy string) (*models.Lead, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current models.Lead
	if err := tx.GetContext(ctx, &current, `SELECT `+leadColumns+` FROM sponsor_leads WHERE id = $1 FOR UPDATE`, id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var updated models.Lead
	const updateQuery = `UPDATE sponsor_leads SET status = $1, updated_at = $2 WHERE id = $3
	RETURNING ` + leadColumns
	if err := tx.GetContext(ctx, &updated, updateQuery, newStatus, now, id); err != nil {
		return nil, fmt.Errorf("update lead status: %w", err)
	}

	const historyQuery = `INSERT INTO lead_status_history (id, lead_id, previous_status, new_status, changed_by, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, historyQuery, uuid.NewString(), id, current.Status, newStatus, changedBy, now); err != nil {
		return nil, fmt.Errorf("record status history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}
	return &updated, nil
}

// SetNotes overwrites the internal notes on a lead.
func (r *LeadRepository) SetNotes(ctx context.Context, id, notes string) (*models.Lead, error) {
	const query = `UPDATE sponsor_leads SET internal_notes = $1, updated_at = $2 WHERE id = $3
	RETURNING ` + leadColumns
	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, notes, time.Now().UTC(), id); err != nil {
		return nil, err
	}
	return &lead, nil
}

// Archive soft-deletes a lead.
func (r *LeadRepository) Archive(ctx context.Context, id string) (*models.Lead, error) {
	now := time.Now().UTC()
	const query = `UPDATE sponsor_leads SET status = $1, archived_at = $2, updated_at = $2 WHERE id = $3
	RETURNING ` + leadColumns
	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, models.LeadStatusArchived, now, id); err != nil {
		return nil, err
	}
	return &lead, nil
}

// Restore brings an archived lead back with status "new". Restoring to
// the pre-archive status is deliberately not attempted.
func (r *LeadRepository) Restore(ctx context.Context, id string) (*models.Lead, error) {
	const query = `UPDATE sponsor_leads SET status = $1, archived_at = NULL, updated_at = $2 WHERE id = $3
	RETURNING ` + leadColumns
	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, models.LeadStatusNew, time.Now().UTC(), id); err != nil {
		return nil, err
	}
	return &lead, nil
}

// History returns the status change trail for a lead, newest first.
func (r *LeadRepository) History(ctx context.Context, leadID string) ([]models.StatusHistoryEntry, error) {
	const query = `SELECT id, lead_id, previous_status, new_status, changed_by, changed_at
	FROM lead_status_history WHERE lead_id = $1 ORDER BY changed_at DESC`
	var entries []models.StatusHistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, leadID); err != nil {
		return nil, fmt.Errorf("lead history: %w", err)
	}
	return entries, nil
}

// Stats counts non-archived leads grouped by status.
func (r *LeadRepository) Stats(ctx context.Context) (*models.LeadStats, error) {
	const query = `SELECT status, COUNT(*) AS count FROM sponsor_leads WHERE archived_at IS NULL GROUP BY status`
	rows := []struct {
		Status models.LeadStatus `db:"status"`
		Count  int               `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}

	stats := &models.LeadStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.LeadStatusNew:
			stats.New = row.Count
		case models.LeadStatusContacted:
			stats.Contacted = row.Count
		case models.LeadStatusNegotiating:
			stats.Negotiating = row.Count
		case models.LeadStatusConfirmed:
			stats.Confirmed = row.Count
		case models.LeadStatusDeclined:
			stats.Declined = row.Count
		}
	}
	return stats, nil
}

// IsNotFound reports whether an error means the lead does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func sortColumn(sortBy string) string {
	switch sortBy {
	case "company_name", "status":
		return sortBy
	default:
		return "created_at"
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
