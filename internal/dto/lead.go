package dto

import "github.com/helpston-festival/festival-api/internal/models"

// SubmitLeadRequest carries the public sponsorship enquiry form fields.
type SubmitLeadRequest struct {
	CompanyName    string `json:"companyName" form:"companyName"`
	ContactName    string `json:"contactName" form:"contactName"`
	Email          string `json:"email" form:"email"`
	Phone          string `json:"phone" form:"phone"`
	Package        string `json:"package" form:"package"`
	Message        string `json:"message" form:"message"`
	ReferralSource string `json:"referralSource" form:"referralSource"`
	Consent        bool   `json:"consent" form:"consent"`
}

// FieldErrors maps field names to human-readable validation messages.
// The "general" key carries errors not tied to a single field.
type FieldErrors map[string]string

// SubmitLeadResponse is the form submission result.
type SubmitLeadResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

// UpdateLeadStatusRequest changes a lead's workflow status.
type UpdateLeadStatusRequest struct {
	Status models.LeadStatus `json:"status" binding:"required"`
}

// UpdateLeadNotesRequest replaces a lead's internal notes.
type UpdateLeadNotesRequest struct {
	Notes string `json:"notes"`
}

// AdminActionResponse reports the outcome of an admin operation.
type AdminActionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// LoginRequest authenticates the administrator.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LeadQuery mirrors the supported listing filters.
type LeadQuery struct {
	Status          []models.LeadStatus
	IncludeArchived bool
	Search          string
	SortBy          string
	SortOrder       string
	Limit           int
	Offset          int
}

// Filter converts the query into a store filter.
func (q LeadQuery) Filter() models.LeadFilter {
	return models.LeadFilter{
		Status:          q.Status,
		IncludeArchived: q.IncludeArchived,
		Search:          q.Search,
		SortBy:          q.SortBy,
		SortOrder:       q.SortOrder,
		Limit:           q.Limit,
		Offset:          q.Offset,
	}
}
