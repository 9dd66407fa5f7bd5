package buyers

import (
	"context"
	"encoding/json"
	"errors"

	"oemlink-backend/internal/matching"
	"oemlink-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB      *gorm.DB
	Matcher *matching.Service
}

// OnboardingInput is the buyer onboarding form.
type OnboardingInput struct {
	Industry        string
	MoqMin          *int
	MoqMax          *int
	Timeline        string
	Location        string
	CrossBorder     bool
	PrototypeNeeded bool
	Certifications  []string
	QuickMatch      bool
}

// Onboard stores the buyer's preferences and runs matching synchronously.
// The quick_match flag only changes the recorded source; both paths wait for
// and return the ranked matches, and matching failures fail the request.
func (s *Service) Onboard(ctx context.Context, buyerOrgID uuid.UUID, in OnboardingInput) ([]matching.Result, error) {
	if buyerOrgID == uuid.Nil {
		return nil, errors.New("Organization not associated with user")
	}
	if in.Industry == "" {
		return nil, errors.New("industry is required")
	}

	if err := s.savePreference(ctx, buyerOrgID, in); err != nil {
		return nil, err
	}

	source := models.MatchSourceOnboarding
	if in.QuickMatch {
		source = models.MatchSourceQuickMatch
	}
	crit := matching.Criteria{
		BuyerOrgID:      buyerOrgID,
		Industry:        in.Industry,
		MoqMin:          in.MoqMin,
		MoqMax:          in.MoqMax,
		Timeline:        in.Timeline,
		Location:        in.Location,
		CrossBorder:     in.CrossBorder,
		PrototypeNeeded: in.PrototypeNeeded,
		Certifications:  in.Certifications,
		Source:          source,
	}
	return s.Matcher.Run(ctx, crit, matching.DefaultOnboardingLimit)
}

func (s *Service) savePreference(ctx context.Context, buyerOrgID uuid.UUID, in OnboardingInput) error {
	var certs datatypes.JSON
	if in.Certifications != nil {
		b, err := json.Marshal(in.Certifications)
		if err != nil {
			return err
		}
		certs = datatypes.JSON(b)
	}

	pref := models.BuyerPreference{
		BuyerOrgID:         buyerOrgID,
		ProductType:        strp(in.Industry),
		LocationPreference: strp(in.Location),
		CrossBorder:        &in.CrossBorder,
		PrototypeNeeded:    &in.PrototypeNeeded,
		MoqMin:             in.MoqMin,
		MoqMax:             in.MoqMax,
		Timeline:           strp(in.Timeline),
		Certifications:     certs,
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "buyer_org_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_type", "location_preference", "cross_border", "prototype_needed",
			"moq_min", "moq_max", "timeline", "certifications", "updated_at",
		}),
	}).Create(&pref).Error
}

// Preference returns the stored onboarding answers for a buyer, nil when the
// buyer never onboarded.
func (s *Service) Preference(ctx context.Context, buyerOrgID uuid.UUID) (*models.BuyerPreference, error) {
	var pref models.BuyerPreference
	err := s.DB.WithContext(ctx).Where("buyer_org_id = ?", buyerOrgID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

func strp(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
