package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Manufacturer scale tiers.
const (
	ScaleSmall  = "small"
	ScaleMedium = "medium"
	ScaleLarge  = "large"
)

// ManufacturerProfile holds the matchable attributes of an OEM organization.
// MoqMax null means the manufacturer has no stated upper capacity.
type ManufacturerProfile struct {
	ProfileID        uuid.UUID      `gorm:"column:profile_id;type:uuid;primaryKey" json:"profile_id"`
	OrganizationID   uuid.UUID      `gorm:"column:organization_id;type:uuid;not null;uniqueIndex" json:"organization_id"`
	Industry         *string        `gorm:"column:industry;index" json:"industry"`
	Location         *string        `gorm:"column:location" json:"location"`
	Scale            *string        `gorm:"column:scale;type:varchar(10)" json:"scale"`
	MoqMin           *int           `gorm:"column:moq_min" json:"moq_min"`
	MoqMax           *int           `gorm:"column:moq_max" json:"moq_max"`
	CrossBorder      bool           `gorm:"column:cross_border;not null;default:false" json:"cross_border"`
	PrototypeSupport bool           `gorm:"column:prototype_support;not null;default:false" json:"prototype_support"`
	Certifications   datatypes.JSON `gorm:"column:certifications" json:"certifications"`
	Rating           *float64       `gorm:"column:rating;type:decimal(3,2)" json:"rating"`
	TotalReviews     *int           `gorm:"column:total_reviews" json:"total_reviews"`
	SubscriptionTier string         `gorm:"column:subscription_tier;type:varchar(20);not null;default:free" json:"subscription_tier"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func (ManufacturerProfile) TableName() string {
	return "ManufacturerProfiles"
}

func (p *ManufacturerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ProfileID == uuid.Nil {
		p.ProfileID = uuid.New()
	}
	return nil
}
