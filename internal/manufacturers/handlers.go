package manufacturers

import (
	"strconv"
	"strings"

	"oemlink-backend/internal/middleware"
	"oemlink-backend/internal/pkg/response"
	"oemlink-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type onboardBody struct {
	Slug             string   `json:"slug"`
	DisplayName      string   `json:"display_name"`
	Industry         string   `json:"industry"`
	Location         string   `json:"location"`
	Scale            string   `json:"scale"`
	MoqMin           *int     `json:"moq_min"`
	MoqMax           *int     `json:"moq_max"`
	CrossBorder      bool     `json:"cross_border"`
	PrototypeSupport bool     `json:"prototype_support"`
	Certifications   []string `json:"certifications"`
}

// Onboard POST /api/v1/manufacturers/onboarding — create the OEM org and profile.
func (h *Handlers) Onboard(c *fiber.Ctx) error {
	var body onboardBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if body.Slug == "" || body.DisplayName == "" {
		return response.Error(c, "slug and display_name are required", 400, nil)
	}
	if !validation.IsValidSlug(body.Slug) {
		return response.Error(c, "Invalid slug format", 400, nil)
	}

	org, profile, err := h.Service.Onboard(c.Context(), OnboardInput{
		Slug:             body.Slug,
		DisplayName:      body.DisplayName,
		Industry:         body.Industry,
		Location:         body.Location,
		Scale:            body.Scale,
		MoqMin:           body.MoqMin,
		MoqMax:           body.MoqMax,
		CrossBorder:      body.CrossBorder,
		PrototypeSupport: body.PrototypeSupport,
		Certifications:   body.Certifications,
	})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return response.Error(c, "Slug already in use", 409, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}

	return response.SuccessCreated(c, "Manufacturer onboarded successfully", fiber.Map{
		"org":     org,
		"profile": profile,
	}, nil)
}

type updateProfileBody struct {
	Industry         string   `json:"industry"`
	Location         string   `json:"location"`
	Scale            string   `json:"scale"`
	MoqMin           *int     `json:"moq_min"`
	MoqMax           *int     `json:"moq_max"`
	CrossBorder      bool     `json:"cross_border"`
	PrototypeSupport bool     `json:"prototype_support"`
	Certifications   []string `json:"certifications"`
}

// UpdateProfile PUT /api/v1/manufacturers/profile — upsert the session org's profile.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil || actor.OrgID == "" {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}
	orgID, err := uuid.Parse(actor.OrgID)
	if err != nil {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}

	var body updateProfileBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	profile, err := h.Service.UpdateProfile(c.Context(), orgID, UpdateProfileInput{
		Industry:         body.Industry,
		Location:         body.Location,
		Scale:            body.Scale,
		MoqMin:           body.MoqMin,
		MoqMax:           body.MoqMax,
		CrossBorder:      body.CrossBorder,
		PrototypeSupport: body.PrototypeSupport,
		Certifications:   body.Certifications,
	})
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Profile updated successfully", fiber.Map{"profile": profile}, nil)
}

// Directory GET /api/v1/manufacturers?industry=F%26B&limit=20 — public listing.
func (h *Handlers) Directory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.Service.Directory(c.Context(), c.Query("industry"), limit)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Manufacturers fetched successfully", fiber.Map{"manufacturers": entries}, fiber.Map{"count": len(entries)})
}
