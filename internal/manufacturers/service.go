package manufacturers

import (
	"context"
	"encoding/json"
	"errors"

	"oemlink-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB *gorm.DB
}

// OnboardInput creates the OEM organization and its matchable profile.
type OnboardInput struct {
	Slug             string
	DisplayName      string
	Industry         string
	Location         string
	Scale            string
	MoqMin           *int
	MoqMax           *int
	CrossBorder      bool
	PrototypeSupport bool
	Certifications   []string
}

func (s *Service) Onboard(ctx context.Context, in OnboardInput) (*models.Org, *models.ManufacturerProfile, error) {
	if in.Slug == "" || in.DisplayName == "" {
		return nil, nil, errors.New("slug and display_name are required")
	}

	var org models.Org
	var profile models.ManufacturerProfile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org = models.Org{
			Slug:        in.Slug,
			DisplayName: in.DisplayName,
			OrgType:     models.OrgTypeOEM,
			Industry:    strp(in.Industry),
			Location:    strp(in.Location),
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		certs, err := certJSON(in.Certifications)
		if err != nil {
			return err
		}
		profile = models.ManufacturerProfile{
			OrganizationID:   org.OrgID,
			Industry:         strp(in.Industry),
			Location:         strp(in.Location),
			Scale:            strp(in.Scale),
			MoqMin:           in.MoqMin,
			MoqMax:           in.MoqMax,
			CrossBorder:      in.CrossBorder,
			PrototypeSupport: in.PrototypeSupport,
			Certifications:   certs,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &org, &profile, nil
}

// UpdateProfileInput upserts the profile attributes for an existing OEM org.
type UpdateProfileInput struct {
	Industry         string
	Location         string
	Scale            string
	MoqMin           *int
	MoqMax           *int
	CrossBorder      bool
	PrototypeSupport bool
	Certifications   []string
}

func (s *Service) UpdateProfile(ctx context.Context, orgID uuid.UUID, in UpdateProfileInput) (*models.ManufacturerProfile, error) {
	if orgID == uuid.Nil {
		return nil, errors.New("Organization not associated with user")
	}

	certs, err := certJSON(in.Certifications)
	if err != nil {
		return nil, err
	}
	profile := models.ManufacturerProfile{
		OrganizationID:   orgID,
		Industry:         strp(in.Industry),
		Location:         strp(in.Location),
		Scale:            strp(in.Scale),
		MoqMin:           in.MoqMin,
		MoqMax:           in.MoqMax,
		CrossBorder:      in.CrossBorder,
		PrototypeSupport: in.PrototypeSupport,
		Certifications:   certs,
	}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "organization_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"industry", "location", "scale", "moq_min", "moq_max",
			"cross_border", "prototype_support", "certifications", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	var saved models.ManufacturerProfile
	if err := s.DB.WithContext(ctx).Where("organization_id = ?", orgID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// DirectoryEntry is a profile joined with its organization for public listing.
type DirectoryEntry struct {
	OrganizationID   uuid.UUID `json:"organization_id"`
	Slug             string    `json:"slug"`
	DisplayName      string    `json:"display_name"`
	Industry         *string   `json:"industry"`
	Location         *string   `json:"location"`
	Scale            *string   `json:"scale"`
	MoqMin           *int      `json:"moq_min"`
	MoqMax           *int      `json:"moq_max"`
	CrossBorder      bool      `json:"cross_border"`
	PrototypeSupport bool      `json:"prototype_support"`
	Rating           *float64  `json:"rating"`
	TotalReviews     *int      `json:"total_reviews"`
}

// Directory lists manufacturers, optionally filtered by exact industry.
func (s *Service) Directory(ctx context.Context, industry string, limit int) ([]DirectoryEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := s.DB.WithContext(ctx).
		Table(`"ManufacturerProfiles" AS p`).
		Select(`p.organization_id, o.slug, o.display_name, p.industry, p.location, p.scale, p.moq_min, p.moq_max, p.cross_border, p.prototype_support, p.rating, p.total_reviews`).
		Joins(`JOIN "Orgs" o ON o.org_id = p.organization_id`).
		Limit(limit)
	if industry != "" {
		q = q.Where("p.industry = ?", industry)
	}

	var entries []DirectoryEntry
	if err := q.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func certJSON(certs []string) (datatypes.JSON, error) {
	if certs == nil {
		return nil, nil
	}
	b, err := json.Marshal(certs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func strp(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
