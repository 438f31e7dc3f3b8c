package handler

import (
	"errors"

	"go-pos-loyalty/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LoyaltyHandler struct {
	service service.LoyaltyService
}

func NewLoyaltyHandler(s service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{service: s}
}

// Statement merges order history with the point ledger for one customer
// GET /api/v1/customers/:id/statement
func (h *LoyaltyHandler) Statement(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	entries, err := h.service.Statement(customerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"data": entries, "total": len(entries)})
}

type earnRequest struct {
	Points int `json:"points"`
}

// Earn credits points manually (admin adjustments, promotions)
// POST /api/v1/customers/:id/earn
func (h *LoyaltyHandler) Earn(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var req earnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Earn(customerID, nil, req.Points, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrInvalidPoints) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Points credited"})
}
