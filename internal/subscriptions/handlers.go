package subscriptions

import (
	"oemlink-backend/internal/middleware"
	"oemlink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Tier prices in THB satang per month. The free tier never reaches Stripe.
var tierPrices = map[string]int64{
	"pro":        290000,
	"enterprise": 990000,
}

type Handlers struct {
	StripeCreator StripePaymentIntentCreator
}

type subscribeBody struct {
	Tier string `json:"tier"`
}

// Subscribe POST /api/v1/subscriptions/subscribe — create a Stripe
// PaymentIntent for the requested tier. The tier change itself happens when
// the webhook confirms payment.
func (h *Handlers) Subscribe(c *fiber.Ctx) error {
	var body subscribeBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	amountCents, ok := tierPrices[body.Tier]
	if !ok {
		return response.Error(c, "Unknown subscription tier", 400, nil)
	}

	actor := middleware.GetActor(c)
	if actor == nil || actor.OrgID == "" {
		return response.Error(c, "User is not associated with any organization", 401, nil)
	}
	if _, err := uuid.Parse(actor.OrgID); err != nil {
		return response.Error(c, "Invalid UUID format for org_id", 400, nil)
	}

	if h.StripeCreator == nil {
		return response.Error(c, "Stripe not configured", 500, nil)
	}
	pi, err := h.StripeCreator.Create(amountCents, "thb", map[string]string{
		"org_id": actor.OrgID,
		"tier":   body.Tier,
	})
	if err != nil {
		return response.Error(c, "Failed to create payment intent", 500, nil)
	}

	return response.Success(c, "Payment intent created", fiber.Map{
		"payment_intent_id": pi.ID,
		"client_secret":     pi.ClientSecret,
		"tier":              body.Tier,
	}, nil)
}
