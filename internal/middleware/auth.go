package middleware

import (
	"oemlink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// Actor is the session user flattened for handlers.
type Actor struct {
	UserID  string
	OrgID   string
	Role    string
	OrgType string
}

// GetActor extracts the acting user from the session map, nil if absent.
func GetActor(c *fiber.Ctx) *Actor {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return nil
	}
	a := &Actor{}
	a.UserID, _ = m["user_id"].(string)
	a.Role, _ = m["role"].(string)
	a.OrgType, _ = m["org_type"].(string)
	if s, ok := m["org_id"].(string); ok {
		a.OrgID = s
	}
	if a.UserID == "" {
		return nil
	}
	return a
}
