package handler

import (
	"errors"

	"go-pos-loyalty/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RegisterHandler struct {
	service service.RegisterService
}

func NewRegisterHandler(s service.RegisterService) *RegisterHandler {
	return &RegisterHandler{service: s}
}

type openRegisterRequest struct {
	InitialAmount decimal.Decimal `json:"initial_amount"`
}

// Open starts a till session for the operator's store
// POST /api/v1/registers/open
func (h *RegisterHandler) Open(c *fiber.Ctx) error {
	var req openRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	storeID, err := getStoreID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	session, err := h.service.Open(storeID, getUserID(c), req.InitialAmount)
	if err != nil {
		if errors.Is(err, service.ErrRegisterAlreadyOpen) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Register opened", "data": session})
}

// Summary computes the reconciliation preview without closing
// GET /api/v1/registers/:id/summary
func (h *RegisterHandler) Summary(c *fiber.Ctx) error {
	sessionID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	summary, err := h.service.PrepareClose(sessionID)
	if err != nil {
		if errors.Is(err, service.ErrRegisterNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// Close confirms the reconciliation and finalizes the session's orders
// POST /api/v1/registers/:id/close
func (h *RegisterHandler) Close(c *fiber.Ctx) error {
	sessionID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	summary, err := h.service.ConfirmClose(sessionID, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegisterNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRegisterAlreadyClosed):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Register closed", "data": summary})
}
