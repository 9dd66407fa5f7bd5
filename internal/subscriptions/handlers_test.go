package subscriptions

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStripe struct {
	lastAmount   int64
	lastCurrency string
	lastMetadata map[string]string
	err          error
}

func (f *fakeStripe) Create(amountCents int64, currency string, metadata map[string]string) (*StripePaymentIntentResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amountCents
	f.lastCurrency = currency
	f.lastMetadata = metadata
	return &StripePaymentIntentResult{ID: "pi_fake", ClientSecret: "pi_fake_secret"}, nil
}

func subscribeApp(h *Handlers, orgID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"org_id":  orgID,
		})
		return c.Next()
	})
	app.Post("/api/v1/subscriptions/subscribe", h.Subscribe)
	return app
}

func postSubscribe(app *fiber.App, tier string) (int, map[string]interface{}) {
	body, _ := json.Marshal(map[string]string{"tier": tier})
	req := httptest.NewRequest("POST", "/api/v1/subscriptions/subscribe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestSubscribe_UnknownTier(t *testing.T) {
	h := &Handlers{StripeCreator: &fakeStripe{}}
	app := subscribeApp(h, uuid.New().String())
	code, _ := postSubscribe(app, "platinum")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestSubscribe_RequiresOrg(t *testing.T) {
	h := &Handlers{StripeCreator: &fakeStripe{}}
	app := fiber.New()
	app.Post("/api/v1/subscriptions/subscribe", h.Subscribe)
	code, _ := postSubscribe(app, "pro")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestSubscribe_CreatesPaymentIntent(t *testing.T) {
	fake := &fakeStripe{}
	h := &Handlers{StripeCreator: fake}
	orgID := uuid.New().String()
	app := subscribeApp(h, orgID)

	code, out := postSubscribe(app, "pro")
	assert.Equal(t, fiber.StatusOK, code)

	data, ok := out["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pi_fake", data["payment_intent_id"])
	assert.Equal(t, "pi_fake_secret", data["client_secret"])
	assert.Equal(t, "pro", data["tier"])

	assert.Equal(t, int64(290000), fake.lastAmount)
	assert.Equal(t, "thb", fake.lastCurrency)
	assert.Equal(t, orgID, fake.lastMetadata["org_id"])
	assert.Equal(t, "pro", fake.lastMetadata["tier"])
}

func TestSubscribe_StripeFailure(t *testing.T) {
	h := &Handlers{StripeCreator: &fakeStripe{err: errors.New("stripe down")}}
	app := subscribeApp(h, uuid.New().String())
	code, _ := postSubscribe(app, "enterprise")
	assert.Equal(t, fiber.StatusInternalServerError, code)
}
