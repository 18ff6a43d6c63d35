package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"hadiah/internal/services"
)

// CurrencyHandler handles HTTP requests for currency detection and
// selection.
type CurrencyHandler struct {
	service *services.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(service *services.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{
		service: service,
	}
}

// RegisterRoutes registers the currency routes with the Fiber app.
func (h *CurrencyHandler) RegisterRoutes(router fiber.Router) {
	currencyRoutes := router.Group("/currency")
	currencyRoutes.Get("/", h.HandleGetCurrency)
	currencyRoutes.Put("/", h.HandleChangeCurrency)
}

// HandleGetCurrency returns the detected display currency. When an amount
// query parameter is given, a formatted sample is included.
func (h *CurrencyHandler) HandleGetCurrency(c *fiber.Ctx) error {
	info := h.service.Detect()
	resp := fiber.Map{
		"currency": info,
	}
	if raw := c.Query("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "amount must be a number",
			})
		}
		resp["formatted"] = h.service.Format(amount)
	}
	return c.JSON(resp)
}

// ChangeCurrencyRequest represents the request body for changing currency.
type ChangeCurrencyRequest struct {
	Code string `json:"code"`
}

// HandleChangeCurrency selects and persists the display currency. Unknown
// codes fall back to the default currency rather than failing.
func (h *CurrencyHandler) HandleChangeCurrency(c *fiber.Ctx) error {
	var req ChangeCurrencyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing currency request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Currency code is required",
		})
	}

	info := h.service.ChangeCurrency(req.Code)
	return c.JSON(fiber.Map{
		"message":  "Currency updated",
		"currency": info,
	})
}
