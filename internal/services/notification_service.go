package services

import (
	"fmt"
	"log"
	"strings"

	"hadiah/internal/models"
	"hadiah/internal/repositories"
	"hadiah/pkg/mailer"
)

// NotificationService sends order confirmation messages. It runs after an
// order is already confirmed, so its failures are reported but must never
// roll anything back.
type NotificationService struct {
	orderRepo repositories.OrderRepository
	mailer    mailer.Mailer
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(orderRepo repositories.OrderRepository, m mailer.Mailer) *NotificationService {
	return &NotificationService{
		orderRepo: orderRepo,
		mailer:    m,
	}
}

// Notify sends the confirmation email for orderID. There is no internal
// deduplication; calling it twice for the same order sends two mails.
func (s *NotificationService) Notify(orderID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return ErrOrderNotFound
	}

	subject := fmt.Sprintf("Your order %s is confirmed", order.ID)
	body := buildConfirmationBody(order)

	if err := s.mailer.Send(order.CustomerEmail, subject, body); err != nil {
		return fmt.Errorf("failed to send confirmation email for order %s: %w", order.ID, err)
	}
	log.Printf("Sent confirmation email for order %s to %s", order.ID, order.CustomerEmail)

	s.sendSMS(order)
	return nil
}

// buildConfirmationBody renders the plain-text confirmation message.
func buildConfirmationBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Thank you for your order! Here is a summary of order %s:\n\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  - %s x%d @ %.2f\n", item.ProductID, item.Quantity, item.Price)
	}
	if order.DiscountAmount > 0 {
		fmt.Fprintf(&b, "\nCoupon %s applied: -%.2f", order.CouponCode, order.DiscountAmount)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f %s\n", order.TotalAmount, order.Currency)
	fmt.Fprintf(&b, "Payment: %s (%s)\n\n", order.PaymentMethod, order.PaymentStatus)
	fmt.Fprintf(&b, "Shipping to:\n%s\n%s\n%s, %s %s\n\n",
		order.ShippingAddress.FullName,
		order.ShippingAddress.Street,
		order.ShippingAddress.City,
		order.ShippingAddress.State,
		order.ShippingAddress.PostalCode,
	)
	b.WriteString("We will let you know when your gifts ship.\n")
	return b.String()
}

// sendSMS is a placeholder; no SMS provider is wired up yet.
func (s *NotificationService) sendSMS(order *models.Order) {
	log.Printf("SMS notification for order %s to %s skipped: no provider configured",
		order.ID, order.ShippingAddress.Phone)
}
