package matching

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMatchingHandlers(t *testing.T) *Handlers {
	svc, db := setupMatchingTest(t)
	seedManufacturer(t, db, "oem-handler", "Electronics", floatp(4.6))
	return &Handlers{Service: svc}
}

func TestScoreAndSave_MissingFields(t *testing.T) {
	h := setupMatchingHandlers(t)
	app := fiber.New()
	app.Post("/api/v1/matching/score", h.ScoreAndSave)

	body, _ := json.Marshal(map[string]interface{}{"industry": "Electronics"})
	req := httptest.NewRequest("POST", "/api/v1/matching/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestScoreAndSave_InvalidBuyerOrgID(t *testing.T) {
	h := setupMatchingHandlers(t)
	app := fiber.New()
	app.Post("/api/v1/matching/score", h.ScoreAndSave)

	body, _ := json.Marshal(map[string]interface{}{
		"buyer_org_id": "not-a-uuid",
		"industry":     "Electronics",
	})
	req := httptest.NewRequest("POST", "/api/v1/matching/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestScoreAndSave_ReturnsRankedMatches(t *testing.T) {
	h := setupMatchingHandlers(t)
	app := fiber.New()
	app.Post("/api/v1/matching/score", h.ScoreAndSave)

	body, _ := json.Marshal(map[string]interface{}{
		"buyer_org_id": uuid.New().String(),
		"industry":     "Electronics",
		"moq_min":      1000,
		"moq_max":      3000,
	})
	req := httptest.NewRequest("POST", "/api/v1/matching/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	matches, _ := data["matches"].([]interface{})
	require.Len(t, matches, 1)
	first, _ := matches[0].(map[string]interface{})
	assert.Equal(t, "oem-handler", first["slug"])
	assert.NotEmpty(t, first["reasons"])
}

func TestBuyerMatches_RequiresOrg(t *testing.T) {
	h := setupMatchingHandlers(t)
	app := fiber.New()
	app.Get("/api/v1/matching/buyer-matches", h.BuyerMatches)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/matching/buyer-matches", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestBuyerMatches_ReturnsPersistedMatches(t *testing.T) {
	h := setupMatchingHandlers(t)
	buyer := uuid.New()

	crit := Criteria{BuyerOrgID: buyer, Industry: "Electronics", Source: "quick_match"}
	_, err := h.Service.Run(httptest.NewRequest("GET", "/", nil).Context(), crit, 10)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"org_id":  buyer.String(),
		})
		return c.Next()
	})
	app.Get("/api/v1/matching/buyer-matches", h.BuyerMatches)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/matching/buyer-matches", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	data, _ := out["data"].(map[string]interface{})
	matches, _ := data["matches"].([]interface{})
	assert.Len(t, matches, 1)
}
