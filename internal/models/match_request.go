package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request types.
const (
	RequestTypeQuote     = "quote"
	RequestTypePrototype = "prototype"
)

// MatchRequest is a buyer's quote or prototype request. Creating one triggers
// best-effort matching in the background.
type MatchRequest struct {
	RequestID   uuid.UUID      `gorm:"column:request_id;type:uuid;primaryKey" json:"request_id"`
	BuyerOrgID  uuid.UUID      `gorm:"column:buyer_org_id;type:uuid;not null;index" json:"buyer_org_id"`
	RequestType string         `gorm:"column:request_type;type:varchar(20);not null" json:"request_type"`
	Industry    *string        `gorm:"column:industry" json:"industry"`
	Quantity    *int           `gorm:"column:quantity" json:"quantity"`
	TargetPrice *float64       `gorm:"column:target_price;type:decimal(18,2)" json:"target_price"`
	Timeline    *string        `gorm:"column:timeline" json:"timeline"`
	Description string         `gorm:"column:description;not null" json:"description"`
	Status      string         `gorm:"column:status;type:varchar(20);not null;default:open" json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MatchRequest) TableName() string {
	return "MatchRequests"
}

func (r *MatchRequest) BeforeCreate(tx *gorm.DB) error {
	if r.RequestID == uuid.Nil {
		r.RequestID = uuid.New()
	}
	return nil
}
