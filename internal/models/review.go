package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a buyer's rating of a manufacturer. One review per
// (buyer, manufacturer) pair; submitting again replaces the old one.
type Review struct {
	ReviewID   uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	BuyerOrgID uuid.UUID `gorm:"column:buyer_org_id;type:uuid;not null;uniqueIndex:idx_review_pair" json:"buyer_org_id"`
	OemOrgID   uuid.UUID `gorm:"column:oem_org_id;type:uuid;not null;uniqueIndex:idx_review_pair" json:"oem_org_id"`
	Rating     int       `gorm:"column:rating;not null" json:"rating"`
	Comment    string    `gorm:"column:comment" json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Review) TableName() string {
	return "Reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == uuid.Nil {
		r.ReviewID = uuid.New()
	}
	return nil
}
