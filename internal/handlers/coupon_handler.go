package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hadiah/internal/services"
)

// CouponHandler handles HTTP requests for coupon validation.
type CouponHandler struct {
	service  *services.CouponService
	validate *validator.Validate
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService) *CouponHandler {
	return &CouponHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the coupon routes with the Fiber app.
func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	couponRoutes := router.Group("/coupons")
	couponRoutes.Post("/apply", h.HandleApplyCoupon)
}

// ApplyCouponRequest represents the request body for applying a coupon.
type ApplyCouponRequest struct {
	Code        string  `json:"code" validate:"required,min=3,max=64"`
	OrderAmount float64 `json:"order_amount" validate:"gte=0"`
}

// HandleApplyCoupon validates a coupon against the given order amount and
// returns the coupon with its computed discount.
func (h *CouponHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing coupon request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	coupon, err := h.service.Validate(req.Code, req.OrderAmount)
	if err != nil {
		log.Printf("Coupon %s rejected: %v", req.Code, err)
		if errors.Is(err, services.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Coupon not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Coupon cannot be applied",
			"error":   err.Error(),
		})
	}

	discount := h.service.CalculateDiscount(req.OrderAmount, coupon)
	return c.JSON(fiber.Map{
		"coupon":   coupon,
		"discount": discount,
	})
}
