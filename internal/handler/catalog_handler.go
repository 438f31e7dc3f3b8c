package handler

import (
	"time"

	"go-pos-loyalty/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog      service.CatalogService
	availability *service.Availability
}

func NewCatalogHandler(catalog service.CatalogService, availability *service.Availability) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, availability: availability}
}

// GetCatalog returns the active products (with variations and price ranges)
// GET /api/v1/stores/:store_id/catalog
func (h *CatalogHandler) GetCatalog(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Params("store_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	products, err := h.catalog.Snapshot(storeID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"data": products, "total": len(products)})
}

// CheckAvailability answers whether the store is open
// GET /api/v1/stores/:store_id/availability?date=YYYY-MM-DD&time=HH:MM
func (h *CatalogHandler) CheckAvailability(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Params("store_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	dateStr := c.Query("date", time.Now().Format("2006-01-02"))
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
	}
	clock := c.Query("time", "")

	open, err := h.availability.IsOpenAt(storeID, date, clock)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"store_id": storeID,
		"date":     dateStr,
		"time":     clock,
		"open":     open,
	})
}
