package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Org types.
const (
	OrgTypeBuyer = "buyer"
	OrgTypeOEM   = "oem"
)

// Org is a buyer or manufacturer organization.
type Org struct {
	OrgID       uuid.UUID      `gorm:"column:org_id;type:uuid;primaryKey" json:"org_id"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	DisplayName string         `gorm:"column:display_name;not null" json:"display_name"`
	OrgType     string         `gorm:"column:org_type;type:varchar(10);not null" json:"org_type"`
	Industry    *string        `gorm:"column:industry" json:"industry"`
	Location    *string        `gorm:"column:location" json:"location"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Org) TableName() string {
	return "Orgs"
}

// BeforeCreate ensures org_id is set for DBs without default uuid.
func (o *Org) BeforeCreate(tx *gorm.DB) error {
	if o.OrgID == uuid.Nil {
		o.OrgID = uuid.New()
	}
	return nil
}
