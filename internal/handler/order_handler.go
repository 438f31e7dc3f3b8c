package handler

import (
	"errors"

	"go-pos-loyalty/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orders   service.OrderService
	statuses service.StatusService
}

func NewOrderHandler(orders service.OrderService, statuses service.StatusService) *OrderHandler {
	return &OrderHandler{orders: orders, statuses: statuses}
}

// Checkout commits the cart into an order
// POST /api/v1/orders
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.orders.Checkout(&req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrStaleStock) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":      "Order committed",
		"order_number": order.OrderNumber,
		"data":         order,
	})
}

// GetOrder returns one order with its items
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orders.GetOrder(orderID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(order)
}

// GetHandoff composes delivery-partner message data for one order
// GET /api/v1/orders/:id/handoff
func (h *OrderHandler) GetHandoff(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	handoff, err := h.orders.Handoff(orderID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(handoff)
}

// Advance moves an order to its next status
// POST /api/v1/orders/:id/advance
func (h *OrderHandler) Advance(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.statuses.Advance(orderID, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Order advanced", "data": order})
}

// Cancel moves an order to the terminal cancelled status
// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.statuses.Cancel(orderID, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Order cancelled", "data": order})
}

// Board lists the store's orders on active statuses
// GET /api/v1/stores/:store_id/orders/active
func (h *OrderHandler) Board(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Params("store_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	orders, err := h.statuses.Board(storeID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"data": orders, "total": len(orders)})
}
