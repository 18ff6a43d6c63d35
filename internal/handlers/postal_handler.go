package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"hadiah/internal/clients"
)

// PostalHandler handles HTTP requests for postal code lookups, used by the
// checkout form to derive city and state.
type PostalHandler struct {
	client clients.PostalClient
}

// NewPostalHandler creates a new PostalHandler.
func NewPostalHandler(client clients.PostalClient) *PostalHandler {
	return &PostalHandler{
		client: client,
	}
}

// RegisterRoutes registers the postal routes with the Fiber app.
func (h *PostalHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/postal/:pincode", h.HandleLookup)
}

// HandleLookup resolves a 6-digit postal code to city and state.
func (h *PostalHandler) HandleLookup(c *fiber.Ctx) error {
	pincode := c.Params("pincode")
	info, err := h.client.Lookup(pincode)
	if err != nil {
		log.Printf("Postal lookup failed for %s: %v", pincode, err)
		switch {
		case errors.Is(err, clients.ErrInvalidPostalCode):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Postal code must be 6 digits",
			})
		case errors.Is(err, clients.ErrPostalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("No record for postal code %s", pincode),
			})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Postal lookup service unavailable",
			})
		}
	}
	return c.JSON(info)
}
