package auth

import (
	"testing"

	"oemlink-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Org{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, orgID *uuid.UUID) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{
		Fullname:     "Test User",
		Email:        email,
		PasswordHash: string(hash),
		OrgID:        orgID,
		Role:         "member",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestLoginUser_MissingFields(t *testing.T) {
	db := setupAuthDB(t)
	_, err := LoginUser(db, LoginInput{Email: "a@b.com"})
	assert.Equal(t, ErrEmailPasswordRequired, err)
	_, err = LoginUser(db, LoginInput{Password: "x"})
	assert.Equal(t, ErrEmailPasswordRequired, err)
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	db := setupAuthDB(t)
	_, err := LoginUser(db, LoginInput{Email: "nobody@example.com", Password: "x"})
	assert.Equal(t, ErrInvalidEmail, err)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	db := setupAuthDB(t)
	seedUser(t, db, "buyer@example.com", "correct-horse", nil)
	_, err := LoginUser(db, LoginInput{Email: "buyer@example.com", Password: "wrong"})
	assert.Equal(t, ErrIncorrectPassword, err)
}

func TestLoginUser_Success(t *testing.T) {
	db := setupAuthDB(t)
	seeded := seedUser(t, db, "buyer@example.com", "correct-horse", nil)
	u, err := LoginUser(db, LoginInput{Email: "buyer@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, seeded.UserID, u.UserID)
	assert.Equal(t, "buyer@example.com", u.Email)
}

func TestRegisterUser_Validation(t *testing.T) {
	db := setupAuthDB(t)
	base := SignupInput{
		Fullname: "New Buyer",
		Email:    "new@example.com",
		Password: "s3cret!pass",
		OrgName:  "New Buyer Co",
		OrgSlug:  "new-buyer-co",
		OrgType:  models.OrgTypeBuyer,
	}

	cases := []struct {
		name   string
		mutate func(*SignupInput)
	}{
		{"bad email", func(in *SignupInput) { in.Email = "not-an-email" }},
		{"weak password", func(in *SignupInput) { in.Password = "short" }},
		{"pw without special char", func(in *SignupInput) { in.Password = "longenough1" }},
		{"bad fullname", func(in *SignupInput) { in.Fullname = "Bot 9000!" }},
		{"missing org name", func(in *SignupInput) { in.OrgName = " " }},
		{"bad slug", func(in *SignupInput) { in.OrgSlug = "Has Spaces" }},
		{"bad org type", func(in *SignupInput) { in.OrgType = "vendor" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := RegisterUser(db, in)
			assert.Error(t, err)
		})
	}
}

func TestRegisterUser_CreatesOrgAndUser(t *testing.T) {
	db := setupAuthDB(t)
	u, err := RegisterUser(db, SignupInput{
		Fullname: "New Buyer",
		Email:    "New@Example.com",
		Password: "s3cret!pass",
		OrgName:  "New Buyer Co",
		OrgSlug:  "new-buyer-co",
		OrgType:  models.OrgTypeBuyer,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)
	require.NotNil(t, u.OrgID)

	var org models.Org
	require.NoError(t, db.Where("org_id = ?", *u.OrgID).First(&org).Error)
	assert.Equal(t, "new-buyer-co", org.Slug)
	assert.Equal(t, models.OrgTypeBuyer, org.OrgType)

	// The stored hash verifies against the plaintext password.
	got, err := LoginUser(db, LoginInput{Email: "new@example.com", Password: "s3cret!pass"})
	require.NoError(t, err)
	assert.Equal(t, u.UserID, got.UserID)
}

func TestRegisterUser_DuplicateEmailAndSlug(t *testing.T) {
	db := setupAuthDB(t)
	in := SignupInput{
		Fullname: "New Buyer",
		Email:    "dup@example.com",
		Password: "s3cret!pass",
		OrgName:  "Dup Co",
		OrgSlug:  "dup-co",
		OrgType:  models.OrgTypeBuyer,
	}
	_, err := RegisterUser(db, in)
	require.NoError(t, err)

	_, err = RegisterUser(db, in)
	require.Error(t, err)
	assert.Equal(t, "Email already registered", err.Error())

	in.Email = "other@example.com"
	_, err = RegisterUser(db, in)
	require.Error(t, err)
	assert.Equal(t, "Organization slug already taken", err.Error())
}

func TestOrgTypeFor(t *testing.T) {
	db := setupAuthDB(t)
	org := models.Org{Slug: "acme-buyers", DisplayName: "Acme", OrgType: models.OrgTypeBuyer}
	require.NoError(t, db.Create(&org).Error)
	withOrg := seedUser(t, db, "with@example.com", "pw", &org.OrgID)
	noOrg := seedUser(t, db, "without@example.com", "pw", nil)

	assert.Equal(t, models.OrgTypeBuyer, OrgTypeFor(db, &withOrg))
	assert.Equal(t, "", OrgTypeFor(db, &noOrg))
	assert.Equal(t, "", OrgTypeFor(db, nil))
}

func TestVerifyUser_Nil(t *testing.T) {
	u, err := VerifyUser(nil)
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_NoUserID(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"fullname": "Test",
		"email":    "a@b.com",
	})
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifyUser_Valid(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"user_id":  "550e8400-e29b-41d4-a716-446655440000",
		"fullname": "Test User",
		"email":    "test@example.com",
		"role":     "member",
		"org_id":   "660e8400-e29b-41d4-a716-446655440000",
		"org_type": "buyer",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", u.UserID)
	assert.Equal(t, "buyer", u.OrgType)
	require.NotNil(t, u.OrgID)
	assert.Equal(t, "660e8400-e29b-41d4-a716-446655440000", *u.OrgID)
}

func TestVerifyUser_NilOrgID(t *testing.T) {
	u, err := VerifyUser(map[string]interface{}{
		"user_id":  "550e8400-e29b-41d4-a716-446655440000",
		"fullname": "Test",
		"email":    "a@b.com",
		"role":     "member",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Nil(t, u.OrgID)
}
