package requests

import (
	"oemlink-backend/internal/middleware"
	"oemlink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createRequestBody struct {
	RequestType string   `json:"request_type"`
	Industry    string   `json:"industry"`
	Quantity    *int     `json:"quantity"`
	TargetPrice *float64 `json:"target_price"`
	Timeline    string   `json:"timeline"`
	Description string   `json:"description"`
}

// Create POST /api/v1/requests — create a quote/prototype request. Matching
// runs in the background; its outcome never affects this response.
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil || actor.OrgID == "" {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}
	orgID, err := uuid.Parse(actor.OrgID)
	if err != nil {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}

	var body createRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	req, err := h.Service.CreateRequest(c.Context(), orgID, CreateRequestInput{
		RequestType: body.RequestType,
		Industry:    body.Industry,
		Quantity:    body.Quantity,
		TargetPrice: body.TargetPrice,
		Timeline:    body.Timeline,
		Description: body.Description,
	})
	if err != nil {
		switch err.Error() {
		case "request_type must be quote or prototype", "description is required":
			return response.Error(c, err.Error(), 400, nil)
		case "Organization not associated with user":
			return response.Error(c, err.Error(), 401, nil)
		default:
			return response.Error(c, err.Error(), 500, nil)
		}
	}

	return response.SuccessCreated(c, "Request created successfully", fiber.Map{"request": req}, nil)
}

// ListOwn GET /api/v1/requests — the buyer's requests, newest first.
func (h *Handlers) ListOwn(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil || actor.OrgID == "" {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}
	orgID, err := uuid.Parse(actor.OrgID)
	if err != nil {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}

	reqs, err := h.Service.ListOrgRequests(c.Context(), orgID)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Requests fetched successfully", fiber.Map{"requests": reqs}, nil)
}
