package matching

import (
	"oemlink-backend/internal/middleware"
	"oemlink-backend/internal/models"
	"oemlink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// ScoreRequest is the ad-hoc scoring body (admin/debug use).
type ScoreRequest struct {
	BuyerOrgID      string   `json:"buyer_org_id"`
	Industry        string   `json:"industry"`
	MoqMin          *int     `json:"moq_min"`
	MoqMax          *int     `json:"moq_max"`
	Timeline        string   `json:"timeline"`
	Location        string   `json:"location"`
	CrossBorder     bool     `json:"cross_border"`
	PrototypeNeeded bool     `json:"prototype_needed"`
	Certifications  []string `json:"certifications"`
	Limit           int      `json:"limit"`
}

// ScoreAndSave POST /api/v1/matching/score — run the pipeline synchronously
// for the given criteria and return the ranked results.
func (h *Handlers) ScoreAndSave(c *fiber.Ctx) error {
	var body ScoreRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if body.BuyerOrgID == "" || body.Industry == "" {
		return response.Error(c, "buyer_org_id and industry are required", 400, nil)
	}
	buyerOrgID, err := uuid.Parse(body.BuyerOrgID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for buyer_org_id", 400, nil)
	}

	crit := Criteria{
		BuyerOrgID:      buyerOrgID,
		Industry:        body.Industry,
		MoqMin:          body.MoqMin,
		MoqMax:          body.MoqMax,
		Timeline:        body.Timeline,
		Location:        body.Location,
		CrossBorder:     body.CrossBorder,
		PrototypeNeeded: body.PrototypeNeeded,
		Certifications:  body.Certifications,
		Source:          models.MatchSourceQuickMatch,
	}

	results, err := h.Service.Run(c.Context(), crit, body.Limit)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Matching completed", fiber.Map{"matches": results}, fiber.Map{"count": len(results)})
}

// BuyerMatches GET /api/v1/matching/buyer-matches — persisted matches for the
// session buyer, highest score first.
func (h *Handlers) BuyerMatches(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil || actor.OrgID == "" {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}
	orgID, err := uuid.Parse(actor.OrgID)
	if err != nil {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}

	matches, err := h.Service.MatchesForBuyer(c.Context(), orgID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Matches fetched successfully", fiber.Map{"matches": matches}, nil)
}
