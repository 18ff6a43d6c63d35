package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hadiah/internal/models"
	"hadiah/internal/services"
)

// CheckoutHandler handles HTTP requests for checkout, payment callbacks and
// order history.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout and order routes with the Fiber
// app. All of them require an authenticated customer.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleCreateOrder)
	checkoutRoutes.Post("/:id/payment", h.HandleConfirmPayment)
	checkoutRoutes.Post("/:id/cancel", h.HandleCancelPayment)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleCreateOrder runs a checkout attempt for the authenticated customer.
func (h *CheckoutHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
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

	userID, _ := c.Locals("user_id").(string)

	order, session, err := h.service.CreateOrder(userID, req)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		switch {
		case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrInvalidAddress):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Checkout validation failed",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrCouponNotFound), errors.Is(err, services.ErrCouponExpired),
			errors.Is(err, services.ErrBelowMinimum), errors.Is(err, services.ErrUsageExceeded):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Coupon cannot be applied",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrGateway):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Payment gateway error, please try again",
				"error":   err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not create order",
				"error":   err.Error(),
			})
		}
	}

	resp := fiber.Map{
		"order": order,
	}
	if session != nil {
		resp["payment_session"] = session
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// PaymentCallbackRequest carries the payment reference and signature the
// payment widget returns on success.
type PaymentCallbackRequest struct {
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// ownsOrder reports whether the authenticated customer owns orderID. A
// missing order and a foreign order are indistinguishable to the caller.
func (h *CheckoutHandler) ownsOrder(c *fiber.Ctx, orderID string) bool {
	userID, _ := c.Locals("user_id").(string)
	order, err := h.service.GetOrderByID(orderID)
	return err == nil && order.UserID == userID
}

// HandleConfirmPayment reconciles a successful payment callback.
func (h *CheckoutHandler) HandleConfirmPayment(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if !h.ownsOrder(c, orderID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", orderID),
		})
	}

	var req PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment callback body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Payment reference and signature are required",
		})
	}

	order, err := h.service.ConfirmPayment(orderID, req.PaymentID, req.Signature)
	if err != nil {
		log.Printf("Error confirming payment for order %s: %v", orderID, err)
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		case errors.Is(err, services.ErrBadSignature):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Payment verification failed",
			})
		case errors.Is(err, services.ErrPaymentClosed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Payment for this order is already settled",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not confirm payment",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Payment confirmed",
		"order":   order,
	})
}

// HandleCancelPayment records a user-abandoned payment.
func (h *CheckoutHandler) HandleCancelPayment(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if !h.ownsOrder(c, orderID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", orderID),
		})
	}

	if err := h.service.CancelPayment(orderID); err != nil {
		log.Printf("Error cancelling payment for order %s: %v", orderID, err)
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		case errors.Is(err, services.ErrPaymentClosed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Payment for this order is already settled",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel payment",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Payment for order %s cancelled", orderID),
	})
}

// HandleGetOrders returns the authenticated customer's order history.
func (h *CheckoutHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	orders, err := h.service.GetOrdersByUser(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns a single order belonging to the authenticated
// customer.
func (h *CheckoutHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	userID, _ := c.Locals("user_id").(string)

	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", orderID),
		})
	}
	if order.UserID != userID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", orderID),
		})
	}
	return c.JSON(order)
}
