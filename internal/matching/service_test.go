package matching

import (
	"context"
	"encoding/json"
	"testing"

	"oemlink-backend/internal/models"
	"oemlink-backend/internal/pkg/apperror"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMatchingTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Org{}, &models.ManufacturerProfile{}, &models.Match{}))
	return &Service{DB: db}, db
}

func seedManufacturer(t *testing.T, db *gorm.DB, slug, industry string, rating *float64) uuid.UUID {
	t.Helper()
	org := models.Org{
		Slug:        slug,
		DisplayName: slug,
		OrgType:     models.OrgTypeOEM,
	}
	require.NoError(t, db.Create(&org).Error)

	moqMax := 5000
	profile := models.ManufacturerProfile{
		OrganizationID:   org.OrgID,
		Industry:         &industry,
		MoqMin:           intp(500),
		MoqMax:           &moqMax,
		CrossBorder:      true,
		PrototypeSupport: true,
		Rating:           rating,
	}
	require.NoError(t, db.Create(&profile).Error)
	return org.OrgID
}

func TestFindMatchingOEMs_FiltersByIndustryAndSortsDescending(t *testing.T) {
	svc, db := setupMatchingTest(t)
	seedManufacturer(t, db, "oem-low", "Electronics", nil)
	seedManufacturer(t, db, "oem-high", "Electronics", floatp(4.9))
	seedManufacturer(t, db, "oem-other", "Textiles", floatp(4.9))

	crit := Criteria{
		BuyerOrgID: uuid.New(),
		Industry:   "Electronics",
		Source:     models.MatchSourceOnboarding,
	}
	results, err := svc.FindMatchingOEMs(context.Background(), crit, 20)
	require.NoError(t, err)

	// The Textiles manufacturer is excluded by the store-side filter.
	require.Len(t, results, 2)
	assert.Equal(t, "oem-high", results[0].Slug)
	assert.Equal(t, "oem-low", results[1].Slug)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestFindMatchingOEMs_LimitBoundsThePoolNotTheOutput(t *testing.T) {
	svc, db := setupMatchingTest(t)
	for i := 0; i < 5; i++ {
		seedManufacturer(t, db, "oem-"+uuid.NewString()[:8], "F&B", nil)
	}

	crit := Criteria{BuyerOrgID: uuid.New(), Industry: "F&B", Source: models.MatchSourceOnboarding}
	results, err := svc.FindMatchingOEMs(context.Background(), crit, 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestFindMatchingOEMs_EmptyPoolIsNotAnError(t *testing.T) {
	svc, _ := setupMatchingTest(t)
	crit := Criteria{BuyerOrgID: uuid.New(), Industry: "Aerospace", Source: models.MatchSourceOnboarding}
	results, err := svc.FindMatchingOEMs(context.Background(), crit, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindMatchingOEMs_FetchFailureIsTyped(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// No migrations: the candidate query fails against missing tables.
	svc := &Service{DB: db}

	crit := Criteria{BuyerOrgID: uuid.New(), Industry: "F&B", Source: models.MatchSourceOnboarding}
	_, err = svc.FindMatchingOEMs(context.Background(), crit, 10)
	require.Error(t, err)

	ae, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, CodeCandidateFetchFailed, ae.Code)
	assert.Equal(t, 500, ae.Status)
}

func TestSaveMatches_EmptyResultsIsNoOp(t *testing.T) {
	svc, db := setupMatchingTest(t)
	crit := Criteria{BuyerOrgID: uuid.New(), Industry: "F&B", Source: models.MatchSourceQuickMatch}
	require.NoError(t, svc.SaveMatches(context.Background(), nil, crit))

	var count int64
	db.Model(&models.Match{}).Count(&count)
	assert.Zero(t, count)
}

func TestSaveMatches_InsertsWithDefaultStatusAndDigest(t *testing.T) {
	svc, db := setupMatchingTest(t)
	buyer := uuid.New()
	oem := uuid.New()
	reqID := uuid.New()

	crit := Criteria{
		BuyerOrgID:     buyer,
		Industry:       "F&B",
		Certifications: []string{"GMP", "HACCP"},
		Source:         models.MatchSourceQuoteRequest,
		RequestID:      &reqID,
	}
	results := []Result{{OemOrgID: oem, Slug: "oem-a", Score: 65, Reasons: []string{"Industry match: F&B"}}}
	require.NoError(t, svc.SaveMatches(context.Background(), results, crit))

	var m models.Match
	require.NoError(t, db.Where("buyer_org_id = ? AND oem_org_id = ?", buyer, oem).First(&m).Error)
	assert.Equal(t, 65, m.Score)
	assert.Equal(t, models.MatchStatusNew, m.Status)
	assert.Equal(t, models.MatchSourceQuoteRequest, m.Source)

	var digest Digest
	require.NoError(t, json.Unmarshal(m.Digest, &digest))
	assert.Equal(t, []string{"Industry match: F&B"}, digest.Reasons)
	assert.Equal(t, []string{"GMP", "HACCP"}, digest.BuyerRequirements.Certifications)
	require.NotNil(t, digest.RequestID)
	assert.Equal(t, reqID, *digest.RequestID)
}

func TestSaveMatches_UpsertIsLastWriteWins(t *testing.T) {
	svc, db := setupMatchingTest(t)
	buyer := uuid.New()
	oem := uuid.New()

	first := Criteria{BuyerOrgID: buyer, Industry: "F&B", Source: models.MatchSourceOnboarding}
	require.NoError(t, svc.SaveMatches(context.Background(), []Result{
		{OemOrgID: oem, Score: 80, Reasons: []string{"first run"}},
	}, first))

	second := Criteria{BuyerOrgID: buyer, Industry: "F&B", Source: models.MatchSourceQuoteRequest}
	require.NoError(t, svc.SaveMatches(context.Background(), []Result{
		{OemOrgID: oem, Score: 45, Reasons: []string{"second run"}},
	}, second))

	var count int64
	db.Model(&models.Match{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var m models.Match
	require.NoError(t, db.Where("buyer_org_id = ? AND oem_org_id = ?", buyer, oem).First(&m).Error)
	assert.Equal(t, 45, m.Score)
	assert.Equal(t, models.MatchSourceQuoteRequest, m.Source)

	var digest Digest
	require.NoError(t, json.Unmarshal(m.Digest, &digest))
	assert.Equal(t, []string{"second run"}, digest.Reasons)
}

func TestRun_FetchesScoresAndPersists(t *testing.T) {
	svc, db := setupMatchingTest(t)
	oemID := seedManufacturer(t, db, "oem-run", "Electronics", floatp(4.8))
	buyer := uuid.New()

	crit := Criteria{
		BuyerOrgID: buyer,
		Industry:   "Electronics",
		MoqMin:     intp(1000),
		MoqMax:     intp(3000),
		Source:     models.MatchSourceQuickMatch,
	}
	results, err := svc.Run(context.Background(), crit, DefaultOnboardingLimit)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, oemID, results[0].OemOrgID)

	var m models.Match
	require.NoError(t, db.Where("buyer_org_id = ?", buyer).First(&m).Error)
	assert.Equal(t, results[0].Score, m.Score)
	assert.Equal(t, models.MatchSourceQuickMatch, m.Source)
}

func TestMatchesForBuyer_OrderedByScoreDescending(t *testing.T) {
	svc, db := setupMatchingTest(t)
	buyer := uuid.New()
	for _, score := range []int{30, 90, 60} {
		require.NoError(t, db.Create(&models.Match{
			BuyerOrgID: buyer,
			OemOrgID:   uuid.New(),
			Score:      score,
			Source:     models.MatchSourceOnboarding,
		}).Error)
	}

	matches, err := svc.MatchesForBuyer(context.Background(), buyer)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, 90, matches[0].Score)
	assert.Equal(t, 60, matches[1].Score)
	assert.Equal(t, 30, matches[2].Score)
}
