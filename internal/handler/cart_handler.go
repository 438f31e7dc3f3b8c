package handler

import (
	"go-pos-loyalty/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

func cartResponse(cart *service.Cart) fiber.Map {
	return fiber.Map{
		"cart_id":  cart.ID,
		"store_id": cart.StoreID,
		"lines":    cart.Lines(),
	}
}

// AddItem adds units of a product (or one of its variations) to a cart
// POST /api/v1/carts/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req service.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.service.AddItem(&req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(cartResponse(cart))
}

// SetQuantity re-validates and sets a line's quantity; zero removes the line
// PUT /api/v1/carts/items
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var req service.SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.service.SetQuantity(&req)
	if err != nil {
		if err == service.ErrCartNotFound || err == service.ErrLineNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cartResponse(cart))
}

// GetCart returns the current cart content
// GET /api/v1/carts/:cart_id
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.Params("cart_id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cartResponse(cart))
}
