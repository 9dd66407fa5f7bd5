package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Match sources (provenance of the run that produced the record).
const (
	MatchSourceOnboarding       = "onboarding"
	MatchSourceQuickMatch       = "quick_match"
	MatchSourceQuoteRequest     = "quote_request"
	MatchSourcePrototypeRequest = "prototype_request"
)

// MatchStatusNew is the insert default. Status is mutated by the approval
// flow, never by the matcher.
const MatchStatusNew = "new"

// Match is a persisted buyer/manufacturer match. The (buyer_org_id, oem_org_id)
// pair is unique; re-running the matcher overwrites score, source and digest.
type Match struct {
	MatchID    uuid.UUID      `gorm:"column:match_id;type:uuid;primaryKey" json:"match_id"`
	BuyerOrgID uuid.UUID      `gorm:"column:buyer_org_id;type:uuid;not null;uniqueIndex:idx_buyer_oem" json:"buyer_org_id"`
	OemOrgID   uuid.UUID      `gorm:"column:oem_org_id;type:uuid;not null;uniqueIndex:idx_buyer_oem" json:"oem_org_id"`
	Score      int            `gorm:"column:score;not null" json:"score"`
	Status     string         `gorm:"column:status;type:varchar(20);not null;default:new" json:"status"`
	Source     string         `gorm:"column:source;type:varchar(30);not null" json:"source"`
	Digest     datatypes.JSON `gorm:"column:digest" json:"digest"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (Match) TableName() string {
	return "Matches"
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.MatchID == uuid.Nil {
		m.MatchID = uuid.New()
	}
	return nil
}
