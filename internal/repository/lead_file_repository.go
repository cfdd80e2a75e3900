package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/helpston-festival/festival-api/internal/models"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
)

// leadDocument is the on-disk shape of a lead: one YAML file per lead,
// named after the slugified company name. The slug doubles as the id.
type leadDocument struct {
	CompanyName       string `yaml:"companyName"`
	ContactName       string `yaml:"contactName"`
	Email             string `yaml:"email"`
	Phone             string `yaml:"phone,omitempty"`
	InterestedPackage string `yaml:"interestedPackage"`
	Message           string `yaml:"message,omitempty"`
	ReferralSource    string `yaml:"referralSource,omitempty"`
	Status            string `yaml:"status"`
	InternalNotes     string `yaml:"internalNotes"`
	CreatedAt         string `yaml:"createdAt"`
	UpdatedAt         string `yaml:"updatedAt,omitempty"`
	ArchivedAt        string `yaml:"archivedAt,omitempty"`
}

// FileLeadRepository stores one YAML file per lead under a directory.
// New leads are written as <slug>.yaml; hand-placed .yml files are
// read and updated in place. Listing reads and parses every file;
// there is no status history.
type FileLeadRepository struct {
	dir    string
	logger *zap.Logger
}

// NewFileLeadRepository ensures the directory exists and returns the store.
func NewFileLeadRepository(dir string, logger *zap.Logger) (*FileLeadRepository, error) {
	if dir == "" {
		dir = "./content/leads"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create leads directory: %w", err)
	}
	return &FileLeadRepository{dir: dir, logger: logger}, nil
}

var slugStripPattern = regexp.MustCompile(`[^\w\s-]`)
var slugDashPattern = regexp.MustCompile(`[\s_-]+`)

// Slugify derives a URL-safe file stem from a company name.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStripPattern.ReplaceAllString(s, "")
	s = slugDashPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "lead"
	}
	return s
}

// Create writes a new lead file, resolving slug collisions with a
// numeric suffix. There is a narrow race window between the existence
// check and the write under concurrent submissions; accepted for this
// store's scale.
func (r *FileLeadRepository) Create(_ context.Context, input models.CreateLeadInput) (*models.Lead, error) {
	slug := r.uniqueSlug(Slugify(input.CompanyName))
	now := time.Now().UTC()

	doc := leadDocument{
		CompanyName:       input.CompanyName,
		ContactName:       input.ContactName,
		Email:             strings.ToLower(input.Email),
		Phone:             input.Phone,
		InterestedPackage: input.InterestedPackage,
		Message:           input.Message,
		ReferralSource:    input.ReferralSource,
		Status:            string(models.LeadStatusNew),
		CreatedAt:         now.Format(time.RFC3339),
		UpdatedAt:         now.Format(time.RFC3339),
	}
	if err := r.write(slug, &doc); err != nil {
		return nil, err
	}
	return docToLead(slug, &doc), nil
}

// GetByID fetches a lead by its slug id.
func (r *FileLeadRepository) GetByID(_ context.Context, id string) (*models.Lead, error) {
	doc, err := r.read(id)
	if err != nil {
		return nil, err
	}
	return docToLead(id, doc), nil
}

// List reads every lead file and applies the filter in memory.
func (r *FileLeadRepository) List(_ context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read leads directory: %w", err)
	}

	leads := make([]models.Lead, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		slug := strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".yaml"), ".yml")
		doc, err := r.read(slug)
		if err != nil {
			// A single unreadable file must not break the listing,
			// but the skipped lead has to show up in the logs.
			r.logger.Warn("skipping unreadable lead", zap.String("slug", slug), zap.Error(err))
			continue
		}
		lead := docToLead(slug, doc)
		if matchesFilter(lead, filter) {
			leads = append(leads, *lead)
		}
	}

	sortLeads(leads, filter.SortBy, filter.SortOrder)

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(leads) {
		return []models.Lead{}, nil
	}
	leads = leads[offset:]
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit < len(leads) {
		leads = leads[:limit]
	}
	return leads, nil
}

// UpdateStatus rewrites the lead file with the new status. The file
// backend keeps no history; changedBy is accepted for interface parity.
func (r *FileLeadRepository) UpdateStatus(_ context.Context, id string, newStatus models.LeadStatus, _ string) (*models.Lead, error) {
	doc, err := r.read(id)
	if err != nil {
		return nil, err
	}
	doc.Status = string(newStatus)
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := r.write(id, doc); err != nil {
		return nil, err
	}
	return docToLead(id, doc), nil
}

// SetNotes overwrites the internal notes.
func (r *FileLeadRepository) SetNotes(_ context.Context, id, notes string) (*models.Lead, error) {
	doc, err := r.read(id)
	if err != nil {
		return nil, err
	}
	doc.InternalNotes = notes
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := r.write(id, doc); err != nil {
		return nil, err
	}
	return docToLead(id, doc), nil
}

// Archive soft-deletes the lead.
func (r *FileLeadRepository) Archive(_ context.Context, id string) (*models.Lead, error) {
	doc, err := r.read(id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	doc.Status = string(models.LeadStatusArchived)
	doc.ArchivedAt = now
	doc.UpdatedAt = now
	if err := r.write(id, doc); err != nil {
		return nil, err
	}
	return docToLead(id, doc), nil
}

// Restore clears the archive marker and resets the status to "new".
func (r *FileLeadRepository) Restore(_ context.Context, id string) (*models.Lead, error) {
	doc, err := r.read(id)
	if err != nil {
		return nil, err
	}
	doc.Status = string(models.LeadStatusNew)
	doc.ArchivedAt = ""
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := r.write(id, doc); err != nil {
		return nil, err
	}
	return docToLead(id, doc), nil
}

// History is unsupported on the file backend.
func (r *FileLeadRepository) History(context.Context, string) ([]models.StatusHistoryEntry, error) {
	return nil, appErrors.ErrHistoryUnsupported
}

// Stats counts non-archived leads by status.
func (r *FileLeadRepository) Stats(ctx context.Context) (*models.LeadStats, error) {
	leads, err := r.List(ctx, models.LeadFilter{Limit: 1 << 20})
	if err != nil {
		return nil, err
	}
	stats := &models.LeadStats{}
	for _, lead := range leads {
		stats.Total++
		switch lead.Status {
		case models.LeadStatusNew:
			stats.New++
		case models.LeadStatusContacted:
			stats.Contacted++
		case models.LeadStatusNegotiating:
			stats.Negotiating++
		case models.LeadStatusConfirmed:
			stats.Confirmed++
		case models.LeadStatusDeclined:
			stats.Declined++
		}
	}
	return stats, nil
}

func (r *FileLeadRepository) uniqueSlug(base string) string {
	slug := base
	for counter := 1; ; counter++ {
		if _, err := os.Stat(r.path(slug)); os.IsNotExist(err) {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// path resolves the file for a slug. An existing .yml file wins so
// hand-placed leads are read and rewritten in place; everything else
// uses the .yaml name this store writes.
func (r *FileLeadRepository) path(slug string) string {
	yml := filepath.Join(r.dir, slug+".yml")
	if _, err := os.Stat(yml); err == nil {
		return yml
	}
	return filepath.Join(r.dir, slug+".yaml")
}

func (r *FileLeadRepository) read(slug string) (*leadDocument, error) {
	raw, err := os.ReadFile(r.path(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("read lead %s: %w", slug, err)
	}
	var doc leadDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse lead %s: %w", slug, err)
	}
	return &doc, nil
}

func (r *FileLeadRepository) write(slug string, doc *leadDocument) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode lead %s: %w", slug, err)
	}
	if err := os.WriteFile(r.path(slug), raw, 0o644); err != nil {
		return fmt.Errorf("write lead %s: %w", slug, err)
	}
	return nil
}

func docToLead(slug string, doc *leadDocument) *models.Lead {
	lead := &models.Lead{
		ID:                slug,
		CompanyName:       doc.CompanyName,
		ContactName:       doc.ContactName,
		Email:             doc.Email,
		InterestedPackage: doc.InterestedPackage,
		Status:            models.LeadStatus(doc.Status),
	}
	if doc.Phone != "" {
		lead.Phone = &doc.Phone
	}
	if doc.Message != "" {
		lead.Message = &doc.Message
	}
	if doc.ReferralSource != "" {
		lead.ReferralSource = &doc.ReferralSource
	}
	if doc.InternalNotes != "" {
		lead.InternalNotes = &doc.InternalNotes
	}
	lead.CreatedAt = parseDocTime(doc.CreatedAt)
	lead.UpdatedAt = parseDocTime(doc.UpdatedAt)
	if lead.UpdatedAt.IsZero() {
		lead.UpdatedAt = lead.CreatedAt
	}
	if doc.ArchivedAt != "" {
		archived := parseDocTime(doc.ArchivedAt)
		lead.ArchivedAt = &archived
	}
	return lead
}

func parseDocTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	// Hand-edited files may carry bare dates.
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Time{}
}

func matchesFilter(lead *models.Lead, filter models.LeadFilter) bool {
	if !filter.IncludeArchived && lead.ArchivedAt != nil {
		return false
	}
	if len(filter.Status) > 0 {
		found := false
		for _, status := range filter.Status {
			if lead.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(lead.CompanyName), needle) &&
			!strings.Contains(strings.ToLower(lead.ContactName), needle) &&
			!strings.Contains(strings.ToLower(lead.Email), needle) {
			return false
		}
	}
	return true
}

func sortLeads(leads []models.Lead, sortBy, sortOrder string) {
	asc := strings.EqualFold(sortOrder, "asc")
	sort.SliceStable(leads, func(i, j int) bool {
		a, b := &leads[i], &leads[j]
		if !asc {
			a, b = b, a
		}
		switch sortBy {
		case "company_name":
			return strings.ToLower(a.CompanyName) < strings.ToLower(b.CompanyName)
		case "status":
			return a.Status < b.Status
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
