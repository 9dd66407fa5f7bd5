package reviews

import (
	"oemlink-backend/internal/middleware"
	"oemlink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createReviewBody struct {
	OemOrgID string `json:"oem_org_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// Create POST /api/v1/reviews — submit or replace the session buyer's review.
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil || actor.OrgID == "" {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}
	buyerOrgID, err := uuid.Parse(actor.OrgID)
	if err != nil {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}

	var body createReviewBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	oemOrgID, err := uuid.Parse(body.OemOrgID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for oem_org_id", 400, nil)
	}

	review, err := h.Service.CreateReview(c.Context(), buyerOrgID, oemOrgID, body.Rating, body.Comment)
	if err != nil {
		switch err.Error() {
		case "rating must be between 1 and 5", "buyer_org_id and oem_org_id are required":
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, err.Error(), 500, nil)
		}
	}
	return response.SuccessCreated(c, "Review submitted successfully", fiber.Map{"review": review}, nil)
}

// ListForOEM GET /api/v1/reviews/:oem_org_id — a manufacturer's reviews.
func (h *Handlers) ListForOEM(c *fiber.Ctx) error {
	oemOrgID, err := uuid.Parse(c.Params("oem_org_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for oem_org_id", 400, nil)
	}

	list, err := h.Service.ListForOEM(c.Context(), oemOrgID)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Reviews fetched successfully", fiber.Map{"reviews": list}, nil)
}
