package matching

import (
	"context"
	"encoding/json"
	"sort"

	"oemlink-backend/internal/models"
	"oemlink-backend/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Default candidate pool sizes per trigger.
const (
	DefaultOnboardingLimit = 20
	DefaultRequestLimit    = 10
)

// Error codes carried by the matcher's typed failures.
const (
	CodeCandidateFetchFailed = "matching/candidate-fetch-failed"
	CodeSaveFailed           = "matching/save-failed"
)

type Service struct {
	DB *gorm.DB
}

// candidateRow is the joined profile+org read from the store.
type candidateRow struct {
	OrganizationID   uuid.UUID
	Slug             string
	DisplayName      string
	Industry         *string
	Location         *string
	Scale            *string
	MoqMin           *int
	MoqMax           *int
	CrossBorder      bool
	PrototypeSupport bool
	Rating           *float64
	TotalReviews     *int
}

func (r candidateRow) candidate() Candidate {
	c := Candidate{
		OemOrgID:         r.OrganizationID,
		Slug:             r.Slug,
		DisplayName:      r.DisplayName,
		MoqMax:           r.MoqMax,
		CrossBorder:      r.CrossBorder,
		PrototypeSupport: r.PrototypeSupport,
		Rating:           r.Rating,
	}
	if r.Industry != nil {
		c.Industry = *r.Industry
	}
	if r.Location != nil {
		c.Location = *r.Location
	}
	if r.Scale != nil {
		c.Scale = *r.Scale
	}
	if r.MoqMin != nil {
		c.MoqMin = *r.MoqMin
	}
	if r.TotalReviews != nil {
		c.TotalReviews = *r.TotalReviews
	}
	return c
}

// FindMatchingOEMs fetches up to limit manufacturers in the criteria's
// industry (exact store-side filter), scores each, and returns all of them
// sorted by score descending. The limit bounds the pool, not the output;
// equal scores keep store order.
func (s *Service) FindMatchingOEMs(ctx context.Context, crit Criteria, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultOnboardingLimit
	}

	var rows []candidateRow
	err := s.DB.WithContext(ctx).
		Table(`"ManufacturerProfiles" AS p`).
		Select(`p.organization_id, o.slug, o.display_name, p.industry, p.location, p.scale, p.moq_min, p.moq_max, p.cross_border, p.prototype_support, p.rating, p.total_reviews`).
		Joins(`JOIN "Orgs" o ON o.org_id = p.organization_id`).
		Where("p.industry = ?", crit.Industry).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Wrap(500, CodeCandidateFetchFailed, "Failed to fetch matching manufacturers", err)
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, Score(row.candidate(), crit))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// SaveMatches upserts one match record per result, keyed on
// (buyer_org_id, oem_org_id). On conflict score, source and digest are
// overwritten unconditionally; status is only set by the insert default.
// Empty results are a no-op.
func (s *Service) SaveMatches(ctx context.Context, results []Result, crit Criteria) error {
	if len(results) == 0 {
		return nil
	}

	records := make([]models.Match, 0, len(results))
	for _, r := range results {
		digest, err := json.Marshal(Digest{
			Reasons:           r.Reasons,
			BuyerRequirements: crit,
			RequestID:         crit.RequestID,
		})
		if err != nil {
			return apperror.Wrap(500, CodeSaveFailed, "Failed to encode match digest", err)
		}
		records = append(records, models.Match{
			BuyerOrgID: crit.BuyerOrgID,
			OemOrgID:   r.OemOrgID,
			Score:      r.Score,
			Source:     crit.Source,
			Digest:     datatypes.JSON(digest),
		})
	}

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "buyer_org_id"}, {Name: "oem_org_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "source", "digest", "updated_at"}),
	}).Create(&records).Error
	if err != nil {
		return apperror.Wrap(500, CodeSaveFailed, "Failed to save matches", err)
	}
	return nil
}

// Run executes the full pipeline: fetch, score, sort, persist. Returns the
// ranked results.
func (s *Service) Run(ctx context.Context, crit Criteria, limit int) ([]Result, error) {
	results, err := s.FindMatchingOEMs(ctx, crit, limit)
	if err != nil {
		return nil, err
	}
	if err := s.SaveMatches(ctx, results, crit); err != nil {
		return nil, err
	}
	return results, nil
}

// RunAsync triggers the pipeline without blocking the caller. Failures are
// logged and swallowed: request creation must succeed even when matching
// cannot run.
func (s *Service) RunAsync(crit Criteria, limit int) {
	go func() {
		if _, err := s.Run(context.Background(), crit, limit); err != nil {
			log.Error().Err(err).
				Str("buyer_org_id", crit.BuyerOrgID.String()).
				Str("source", crit.Source).
				Msg("Background matching run failed")
		}
	}()
}

// MatchesForBuyer returns the buyer's persisted matches ordered by score
// descending (admin/debug read of what SaveMatches wrote).
func (s *Service) MatchesForBuyer(ctx context.Context, buyerOrgID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	err := s.DB.WithContext(ctx).
		Where("buyer_org_id = ?", buyerOrgID).
		Order("score DESC").
		Find(&matches).Error
	if err != nil {
		return nil, apperror.Wrap(500, CodeCandidateFetchFailed, "Failed to fetch matches", err)
	}
	return matches, nil
}
