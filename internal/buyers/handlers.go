package buyers

import (
	"oemlink-backend/internal/middleware"
	"oemlink-backend/internal/pkg/apperror"
	"oemlink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type onboardingBody struct {
	Industry        string   `json:"industry"`
	MoqMin          *int     `json:"moq_min"`
	MoqMax          *int     `json:"moq_max"`
	Timeline        string   `json:"timeline"`
	Location        string   `json:"location"`
	CrossBorder     bool     `json:"cross_border"`
	PrototypeNeeded bool     `json:"prototype_needed"`
	Certifications  []string `json:"certifications"`
	QuickMatch      bool     `json:"quick_match"`
}

// Onboard POST /api/v1/buyers/onboarding — store preferences, run matching,
// return ranked matches.
func (h *Handlers) Onboard(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil || actor.OrgID == "" {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}
	orgID, err := uuid.Parse(actor.OrgID)
	if err != nil {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}

	var body onboardingBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	matches, err := h.Service.Onboard(c.Context(), orgID, OnboardingInput{
		Industry:        body.Industry,
		MoqMin:          body.MoqMin,
		MoqMax:          body.MoqMax,
		Timeline:        body.Timeline,
		Location:        body.Location,
		CrossBorder:     body.CrossBorder,
		PrototypeNeeded: body.PrototypeNeeded,
		Certifications:  body.Certifications,
		QuickMatch:      body.QuickMatch,
	})
	if err != nil {
		if _, ok := err.(*apperror.AppError); ok {
			return response.AppError(c, err)
		}
		switch err.Error() {
		case "industry is required":
			return response.Error(c, err.Error(), 400, nil)
		case "Organization not associated with user":
			return response.Error(c, err.Error(), 401, nil)
		default:
			return response.Error(c, err.Error(), 500, nil)
		}
	}

	return response.Success(c, "Onboarding completed", fiber.Map{"matches": matches}, fiber.Map{"count": len(matches)})
}

// Preference GET /api/v1/buyers/preference — the stored onboarding answers.
func (h *Handlers) Preference(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil || actor.OrgID == "" {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}
	orgID, err := uuid.Parse(actor.OrgID)
	if err != nil {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}

	pref, err := h.Service.Preference(c.Context(), orgID)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	if pref == nil {
		return response.Error(c, "Preferences not found", 404, nil)
	}
	return response.Success(c, "Preferences fetched successfully", fiber.Map{"preference": pref}, nil)
}
