package reviews

import (
	"context"
	"errors"
	"math"

	"oemlink-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB *gorm.DB
}

// CreateReview upserts the buyer's review of a manufacturer (one per pair)
// and recomputes the profile's rating aggregate in the same transaction. The
// aggregate feeds the matcher's rating rule.
func (s *Service) CreateReview(ctx context.Context, buyerOrgID, oemOrgID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if buyerOrgID == uuid.Nil || oemOrgID == uuid.Nil {
		return nil, errors.New("buyer_org_id and oem_org_id are required")
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}

	review := &models.Review{
		BuyerOrgID: buyerOrgID,
		OemOrgID:   oemOrgID,
		Rating:     rating,
		Comment:    comment,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "buyer_org_id"}, {Name: "oem_org_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).Create(review).Error; err != nil {
			return err
		}

		type agg struct {
			Avg   float64
			Count int
		}
		var a agg
		if err := tx.Model(&models.Review{}).
			Select("AVG(rating) AS avg, COUNT(*) AS count").
			Where("oem_org_id = ?", oemOrgID).
			Scan(&a).Error; err != nil {
			return err
		}

		rounded := math.Round(a.Avg*100) / 100
		return tx.Model(&models.ManufacturerProfile{}).
			Where("organization_id = ?", oemOrgID).
			Updates(map[string]interface{}{
				"rating":        rounded,
				"total_reviews": a.Count,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ListForOEM returns a manufacturer's reviews, newest first.
func (s *Service) ListForOEM(ctx context.Context, oemOrgID uuid.UUID) ([]models.Review, error) {
	if oemOrgID == uuid.Nil {
		return nil, errors.New("oem_org_id is required")
	}
	var list []models.Review
	if err := s.DB.WithContext(ctx).Where("oem_org_id = ?", oemOrgID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
