package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull user info from the JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getStoreID(c *fiber.Ctx) (uuid.UUID, error) {
	storeID, ok := c.Locals("store_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(storeID)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
