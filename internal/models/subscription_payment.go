package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubscriptionPayment records a processed Stripe payment for a manufacturer
// subscription tier. StripePaymentIntentID is unique for webhook idempotency.
type SubscriptionPayment struct {
	PaymentID             uuid.UUID      `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	OrgID                 uuid.UUID      `gorm:"column:org_id;type:uuid;not null;index" json:"org_id"`
	Tier                  string         `gorm:"column:tier;type:varchar(20);not null" json:"tier"`
	StripePaymentIntentID string         `gorm:"column:stripe_payment_intent_id;not null;uniqueIndex" json:"stripe_payment_intent_id"`
	Amount                int64          `gorm:"column:amount;not null" json:"amount"`
	Currency              string         `gorm:"column:currency;type:varchar(3);not null" json:"currency"`
	Status                string         `gorm:"column:status;type:varchar(20);not null" json:"status"`
	RawEvent              datatypes.JSON `gorm:"column:raw_event" json:"-"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

func (SubscriptionPayment) TableName() string {
	return "SubscriptionPayments"
}

func (p *SubscriptionPayment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
