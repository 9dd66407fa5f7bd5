package auth

import (
	"errors"
	"strings"

	"oemlink-backend/internal/models"
	"oemlink-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID   string  `json:"user_id"`
	Fullname string  `json:"fullname"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	OrgID    *string `json:"org_id"`
	OrgType  string  `json:"org_type"`
}

// UserFinder abstracts user lookup by email+password (for production GORM or test doubles).
type UserFinder interface {
	FindByEmailAndPassword(email, password string) (*models.User, error)
}

// GormUserFinder implements UserFinder using GORM and bcrypt.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByEmailAndPassword(email, password string) (*models.User, error) {
	return LoginUser(g.DB, LoginInput{Email: email, Password: password})
}

// LoginUser finds user by email and verifies password. Returns user for session or error.
func LoginUser(db *gorm.DB, input LoginInput) (*models.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u models.User
	if err := db.Where("email = ?", input.Email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &u, nil
}

// SignupInput for the signup request body. Every account belongs to an
// organization, so signup creates both in one transaction.
type SignupInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OrgName  string `json:"org_name"`
	OrgSlug  string `json:"org_slug"`
	OrgType  string `json:"org_type"`
}

// RegisterUser validates the input, creates the organization and its first
// user, and returns the user with OrgID set.
func RegisterUser(db *gorm.DB, in SignupInput) (*models.User, error) {
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, errors.New("Invalid email format")
	}
	if in.Password == "" || !validation.IsValidPassword(in.Password) {
		return nil, errors.New("Password must be at least 8 characters with a letter, a number and a special character")
	}
	fullname := strings.TrimSpace(in.Fullname)
	if fullname == "" || !validation.IsValidFullname(fullname) {
		return nil, errors.New("Full name contains invalid characters (only letters, spaces, hyphens, and apostrophes allowed)")
	}
	if strings.TrimSpace(in.OrgName) == "" {
		return nil, errors.New("Organization name is required")
	}
	if !validation.IsValidSlug(in.OrgSlug) {
		return nil, errors.New("Invalid slug format (lowercase letters, numbers and hyphens)")
	}
	if in.OrgType != models.OrgTypeBuyer && in.OrgType != models.OrgTypeOEM {
		return nil, errors.New("org_type must be buyer or oem")
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, errors.New("Email already registered")
	}
	var existingOrg models.Org
	if err := db.Where("slug = ?", in.OrgSlug).First(&existingOrg).Error; err == nil {
		return nil, errors.New("Organization slug already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	org := &models.Org{
		Slug:        in.OrgSlug,
		DisplayName: strings.TrimSpace(in.OrgName),
		OrgType:     in.OrgType,
	}
	u := &models.User{
		Fullname:     fullname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "member",
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		u.OrgID = &org.OrgID
		return tx.Create(u).Error
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// OrgTypeFor resolves the org type for a user's org, "" when the user has no org.
func OrgTypeFor(db *gorm.DB, u *models.User) string {
	if u == nil || u.OrgID == nil {
		return ""
	}
	var org models.Org
	if err := db.Where("org_id = ?", *u.OrgID).First(&org).Error; err != nil {
		return ""
	}
	return org.OrgType
}

// VerifyUser validates session user and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	out := &SessionUserShape{
		UserID:   userID,
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
		OrgType:  str(m["org_type"]),
	}
	if o, ok := m["org_id"]; ok && o != nil {
		if s, ok := o.(string); ok {
			out.OrgID = &s
		}
	}
	return out, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
