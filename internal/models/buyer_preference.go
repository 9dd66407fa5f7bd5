package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BuyerPreference stores a buyer org's onboarding answers. Request-triggered
// matching falls back to these for fields the request itself didn't specify.
type BuyerPreference struct {
	PreferenceID       uuid.UUID      `gorm:"column:preference_id;type:uuid;primaryKey" json:"preference_id"`
	BuyerOrgID         uuid.UUID      `gorm:"column:buyer_org_id;type:uuid;not null;uniqueIndex" json:"buyer_org_id"`
	ProductType        *string        `gorm:"column:product_type" json:"product_type"`
	LocationPreference *string        `gorm:"column:location_preference" json:"location_preference"`
	CrossBorder        *bool          `gorm:"column:cross_border" json:"cross_border"`
	PrototypeNeeded    *bool          `gorm:"column:prototype_needed" json:"prototype_needed"`
	MoqMin             *int           `gorm:"column:moq_min" json:"moq_min"`
	MoqMax             *int           `gorm:"column:moq_max" json:"moq_max"`
	Timeline           *string        `gorm:"column:timeline" json:"timeline"`
	Certifications     datatypes.JSON `gorm:"column:certifications" json:"certifications"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

func (BuyerPreference) TableName() string {
	return "BuyerPreferences"
}

func (b *BuyerPreference) BeforeCreate(tx *gorm.DB) error {
	if b.PreferenceID == uuid.Nil {
		b.PreferenceID = uuid.New()
	}
	return nil
}
