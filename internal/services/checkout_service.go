package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"hadiah/internal/gateway"
	"hadiah/internal/models"
	"hadiah/internal/repositories"
)

// Checkout failures. Validation and lookup errors are recoverable by the
// user; gateway and persistence errors abort the attempt.
var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("shipping address is incomplete")
	ErrGateway        = errors.New("payment gateway rejected the order")
	ErrPersistence    = errors.New("failed to save order")
	ErrOrderNotFound  = errors.New("order not found")
	ErrBadSignature   = errors.New("payment signature verification failed")
	ErrPaymentClosed  = errors.New("payment already settled")
)

// EventPublisher publishes order lifecycle events for asynchronous
// consumers such as the notification sender.
type EventPublisher interface {
	PublishOrderConfirmed(orderID string) error
}

// OrderDraft is the computed order-creation payload: totals plus the coupon
// that produced the discount, if any.
type OrderDraft struct {
	Subtotal       float64
	DiscountAmount float64
	Total          float64
	Coupon         *models.Coupon
}

// CheckoutService assembles orders from cart contents, creates payment
// gateway orders and persists the result.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	coupons   *CouponService
	currency  *CurrencyService
	gateway   gateway.PaymentGateway
	events    EventPublisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	coupons *CouponService,
	currency *CurrencyService,
	paymentGateway gateway.PaymentGateway,
	events EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		coupons:   coupons,
		currency:  currency,
		gateway:   paymentGateway,
		events:    events,
	}
}

// AssembleOrder validates the cart and address and computes the totals for
// a checkout attempt. The total invariant holds at this point: total equals
// the item subtotal minus the coupon discount, floored at zero.
func (s *CheckoutService) AssembleOrder(req models.CheckoutRequest) (*OrderDraft, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validateAddress(req.Address); err != nil {
		return nil, err
	}

	var subtotal float64
	for _, line := range req.Items {
		subtotal += line.Price * float64(line.Quantity)
	}

	draft := &OrderDraft{Subtotal: subtotal}
	if req.CouponCode != "" {
		coupon, err := s.coupons.Validate(req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		draft.Coupon = coupon
		draft.DiscountAmount = s.coupons.CalculateDiscount(subtotal, coupon)
	}

	draft.Total = subtotal - draft.DiscountAmount
	if draft.Total < 0 {
		draft.Total = 0
	}
	return draft, nil
}

// CreateOrder runs a checkout attempt end to end: totals, gateway order,
// then the persisted order row plus one item row per cart line. On the
// cash-on-delivery path the gateway is skipped and the order is confirmed
// immediately. A gateway failure persists nothing; a persistence failure
// after gateway success leaves the gateway order unreconciled.
func (s *CheckoutService) CreateOrder(userID string, req models.CheckoutRequest) (*models.Order, *models.PaymentSession, error) {
	draft, err := s.AssembleOrder(req)
	if err != nil {
		return nil, nil, err
	}

	currencyCode := strings.ToUpper(req.Currency)
	if currencyCode == "" {
		currencyCode = s.currency.Detect().Code
	}

	address := req.Address
	if address.Country == "" {
		address.Country = "IN"
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: address,
		TotalAmount:     draft.Total,
		Currency:        currencyCode,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		DiscountAmount:  draft.DiscountAmount,
		Status:          models.OrderStatusPending,
	}
	if draft.Coupon != nil {
		order.CouponCode = draft.Coupon.Code
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	var session *models.PaymentSession
	if req.PaymentMethod == models.PaymentMethodCOD {
		order.Status = models.OrderStatusConfirmed
	} else {
		amountMinor := int64(math.Round(draft.Total * 100))
		gatewayOrderID, err := s.gateway.CreateOrder(amountMinor, currencyCode, order.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrGateway, err)
		}
		order.GatewayOrderID = gatewayOrderID
		session = &models.PaymentSession{
			GatewayOrderID: gatewayOrderID,
			Amount:         amountMinor,
			Currency:       currencyCode,
			KeyID:          s.gateway.KeyID(),
		}
	}

	if err := s.orderRepo.Create(order); err != nil {
		// The gateway order, if one was created, is left unreconciled.
		return nil, nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if order.Status == models.OrderStatusConfirmed {
		s.publishConfirmed(order.ID)
	}
	return order, session, nil
}

// ConfirmPayment reconciles a successful payment callback: it verifies the
// gateway signature, transitions the order to paid/confirmed and publishes
// the order-confirmed event. Payment status is terminal once paid or failed;
// a repeated callback for a paid order is a no-op and a failed one is
// rejected.
func (s *CheckoutService) ConfirmPayment(orderID, paymentID, signature string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return order, nil
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		return nil, ErrPaymentClosed
	}

	if !s.gateway.VerifySignature(order.GatewayOrderID, paymentID, signature) {
		return nil, ErrBadSignature
	}

	if err := s.orderRepo.UpdatePayment(orderID, models.PaymentStatusPaid, models.OrderStatusConfirmed, paymentID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	order.PaymentStatus = models.PaymentStatusPaid
	order.Status = models.OrderStatusConfirmed
	order.PaymentRef = paymentID

	s.publishConfirmed(order.ID)
	return order, nil
}

// CancelPayment records that the user abandoned or the gateway failed the
// payment for a pending order. Orders whose payment already settled cannot
// be cancelled.
func (s *CheckoutService) CancelPayment(orderID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return ErrOrderNotFound
	}
	if order.PaymentStatus != models.PaymentStatusPending {
		return ErrPaymentClosed
	}
	if err := s.orderRepo.UpdatePayment(orderID, models.PaymentStatusFailed, models.OrderStatusCancelled, ""); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// GetOrderByID retrieves a single order with its items.
func (s *CheckoutService) GetOrderByID(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrdersByUser retrieves the order history for a user.
func (s *CheckoutService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

func (s *CheckoutService) publishConfirmed(orderID string) {
	if s.events == nil {
		log.Println("Event publisher is not initialized. Skipping order confirmed event.")
		return
	}
	if err := s.events.PublishOrderConfirmed(orderID); err != nil {
		log.Printf("Warning: Failed to publish order confirmed event for order %s: %v", orderID, err)
	}
}

// validateAddress checks the required shipping fields. Country is optional;
// it defaults at order creation.
func validateAddress(a models.ShippingAddress) error {
	if a.FullName == "" || a.Phone == "" || a.Street == "" ||
		a.City == "" || a.State == "" || a.PostalCode == "" {
		return ErrInvalidAddress
	}
	return nil
}
