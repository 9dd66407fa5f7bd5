// Package matching implements the buyer-to-OEM scoring engine: a pure
// weighted scorer over manufacturer attributes, candidate retrieval, and
// idempotent persistence of ranked match records.
package matching

import (
	"github.com/google/uuid"
)

// Criteria is a buyer's stated requirements, assembled per call by the
// onboarding, quote-request or ad-hoc scoring paths.
type Criteria struct {
	BuyerOrgID      uuid.UUID `json:"buyer_org_id"`
	Industry        string    `json:"industry"`
	MoqMin          *int      `json:"moq_min,omitempty"`
	MoqMax          *int      `json:"moq_max,omitempty"`
	Timeline        string    `json:"timeline,omitempty"`
	Location        string    `json:"location,omitempty"`
	CrossBorder     bool      `json:"cross_border,omitempty"`
	PrototypeNeeded bool      `json:"prototype_needed,omitempty"`
	// Certifications are stored in the match digest for audit; the scorer
	// does not consult them.
	Certifications []string   `json:"certifications,omitempty"`
	Source         string     `json:"source"`
	RequestID      *uuid.UUID `json:"request_id,omitempty"`
}

// Candidate is a manufacturer profile joined with its organization fields,
// as returned by the candidate store.
type Candidate struct {
	OemOrgID         uuid.UUID `json:"oem_org_id"`
	Slug             string    `json:"slug"`
	DisplayName      string    `json:"display_name"`
	Industry         string    `json:"industry"`
	Location         string    `json:"location"`
	Scale            string    `json:"scale"`
	MoqMin           int       `json:"moq_min"`
	MoqMax           *int      `json:"moq_max"`
	CrossBorder      bool      `json:"cross_border"`
	PrototypeSupport bool      `json:"prototype_support"`
	Rating           *float64  `json:"rating"`
	TotalReviews     int       `json:"total_reviews"`
}

// Result is one scored candidate. Reasons are in rule-evaluation order and
// may include zero-contribution diagnostics.
type Result struct {
	OemOrgID    uuid.UUID `json:"oem_org_id"`
	Slug        string    `json:"slug"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	Reasons     []string  `json:"reasons"`
}

// Digest is the audit blob persisted alongside each match record.
type Digest struct {
	Reasons           []string   `json:"reasons"`
	BuyerRequirements Criteria   `json:"buyer_requirements"`
	RequestID         *uuid.UUID `json:"request_id,omitempty"`
}
