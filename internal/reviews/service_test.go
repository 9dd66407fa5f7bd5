package reviews

import (
	"context"
	"testing"

	"oemlink-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewsTest(t *testing.T) (*Service, *gorm.DB, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Org{}, &models.ManufacturerProfile{}, &models.Review{}))

	org := models.Org{Slug: "rev-mfg", DisplayName: "Rev Mfg", OrgType: models.OrgTypeOEM}
	require.NoError(t, db.Create(&org).Error)
	require.NoError(t, db.Create(&models.ManufacturerProfile{OrganizationID: org.OrgID}).Error)
	return &Service{DB: db}, db, org.OrgID
}

func TestCreateReview_ValidatesRating(t *testing.T) {
	svc, _, oem := setupReviewsTest(t)
	_, err := svc.CreateReview(context.Background(), uuid.New(), oem, 6, "")
	require.Error(t, err)
	assert.Equal(t, "rating must be between 1 and 5", err.Error())

	_, err = svc.CreateReview(context.Background(), uuid.New(), oem, 0, "")
	require.Error(t, err)
}

func TestCreateReview_UpdatesProfileAggregate(t *testing.T) {
	svc, db, oem := setupReviewsTest(t)

	_, err := svc.CreateReview(context.Background(), uuid.New(), oem, 5, "excellent run")
	require.NoError(t, err)
	_, err = svc.CreateReview(context.Background(), uuid.New(), oem, 4, "solid")
	require.NoError(t, err)

	var profile models.ManufacturerProfile
	require.NoError(t, db.Where("organization_id = ?", oem).First(&profile).Error)
	require.NotNil(t, profile.Rating)
	assert.InDelta(t, 4.5, *profile.Rating, 0.001)
	require.NotNil(t, profile.TotalReviews)
	assert.Equal(t, 2, *profile.TotalReviews)
}

func TestCreateReview_SecondReviewFromSameBuyerReplaces(t *testing.T) {
	svc, db, oem := setupReviewsTest(t)
	buyer := uuid.New()

	_, err := svc.CreateReview(context.Background(), buyer, oem, 2, "late delivery")
	require.NoError(t, err)
	_, err = svc.CreateReview(context.Background(), buyer, oem, 4, "second order went well")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Review{}).Where("oem_org_id = ?", oem).Count(&count)
	assert.EqualValues(t, 1, count)

	var profile models.ManufacturerProfile
	require.NoError(t, db.Where("organization_id = ?", oem).First(&profile).Error)
	require.NotNil(t, profile.Rating)
	assert.InDelta(t, 4.0, *profile.Rating, 0.001)
	require.NotNil(t, profile.TotalReviews)
	assert.Equal(t, 1, *profile.TotalReviews)
}

func TestListForOEM_ReturnsReviews(t *testing.T) {
	svc, _, oem := setupReviewsTest(t)
	for i := 0; i < 3; i++ {
		_, err := svc.CreateReview(context.Background(), uuid.New(), oem, 4, "ok")
		require.NoError(t, err)
	}

	list, err := svc.ListForOEM(context.Background(), oem)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
