package models

import "time"

// LeadStatus captures the lifecycle stage of a sponsorship enquiry.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusNegotiating LeadStatus = "negotiating"
	LeadStatusConfirmed   LeadStatus = "confirmed"
	LeadStatusDeclined    LeadStatus = "declined"
	LeadStatusArchived    LeadStatus = "archived"
)

// LeadStatuses lists every defined status value.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusNegotiating,
	LeadStatusConfirmed,
	LeadStatusDeclined,
	LeadStatusArchived,
}

// IsValid reports whether the status is one of the six defined values.
func (s LeadStatus) IsValid() bool {
	for _, status := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransition reports whether a status change follows the conventional
// workflow graph. The store does not reject unconventional changes among
// valid statuses; callers use this to flag them.
func CanTransition(from, to LeadStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if to == LeadStatusArchived {
		return true
	}
	switch from {
	case LeadStatusNew:
		return to == LeadStatusContacted || to == LeadStatusDeclined
	case LeadStatusContacted:
		return to == LeadStatusNegotiating || to == LeadStatusConfirmed || to == LeadStatusDeclined
	case LeadStatusNegotiating:
		return to == LeadStatusConfirmed || to == LeadStatusDeclined
	case LeadStatusConfirmed:
		return to == LeadStatusDeclined
	case LeadStatusArchived:
		// Leaving archived happens only through the restore operation.
		return to == LeadStatusNew
	}
	return false
}

// Lead represents a sponsorship enquiry record.
type Lead struct {
	ID                string     `db:"id" json:"id"`
	CompanyName       string     `db:"company_name" json:"companyName"`
	ContactName       string     `db:"contact_name" json:"contactName"`
	Email             string     `db:"email" json:"email"`
	Phone             *string    `db:"phone" json:"phone,omitempty"`
	InterestedPackage string     `db:"interested_package" json:"interestedPackage"`
	Message           *string    `db:"message" json:"message,omitempty"`
	ReferralSource    *string    `db:"referral_source" json:"referralSource,omitempty"`
	Status            LeadStatus `db:"status" json:"status"`
	InternalNotes     *string    `db:"internal_notes" json:"internalNotes,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updatedAt"`
	ArchivedAt        *time.Time `db:"archived_at" json:"archivedAt,omitempty"`
}

// CreateLeadInput carries the validated fields for a new lead.
type CreateLeadInput struct {
	CompanyName       string
	ContactName       string
	Email             string
	Phone             string
	InterestedPackage string
	Message           string
	ReferralSource    string
}

// LeadFilter constrains listing queries.
type LeadFilter struct {
	Status          []LeadStatus
	IncludeArchived bool
	Search          string
	SortBy          string
	SortOrder       string
	Limit           int
	Offset          int
}

// StatusHistoryEntry is an append-only audit record of a status change.
type StatusHistoryEntry struct {
	ID             string     `db:"id" json:"id"`
	LeadID         string     `db:"lead_id" json:"leadId"`
	PreviousStatus LeadStatus `db:"previous_status" json:"previousStatus"`
	NewStatus      LeadStatus `db:"new_status" json:"newStatus"`
	ChangedBy      string     `db:"changed_by" json:"changedBy"`
	ChangedAt      time.Time  `db:"changed_at" json:"changedAt"`
}

// LeadStats summarises lead counts by status, excluding archived leads.
type LeadStats struct {
	Total       int `json:"total"`
	New         int `json:"new"`
	Contacted   int `json:"contacted"`
	Negotiating int `json:"negotiating"`
	Confirmed   int `json:"confirmed"`
	Declined    int `json:"declined"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
