package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hadiah/internal/models"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func confirmedOrder() *models.Order {
	return &models.Order{
		ID:            "ord-1",
		CustomerName:  "Priya Sharma",
		CustomerEmail: "priya@example.com",
		Items: []models.OrderItem{
			{ProductID: "prod-1", Quantity: 2, Price: 349},
		},
		ShippingAddress: testAddress(),
		TotalAmount:     628.20,
		Currency:        "INR",
		PaymentMethod:   models.PaymentMethodRazorpay,
		PaymentStatus:   models.PaymentStatusPaid,
		CouponCode:      "SAVE10",
		DiscountAmount:  69.80,
		Status:          models.OrderStatusConfirmed,
	}
}

func TestNotifySendsConfirmationEmail(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	m := new(mockMailer)
	service := NewNotificationService(orderRepo, m)

	order := confirmedOrder()
	orderRepo.On("GetByID", "ord-1").Return(order, nil)
	m.On("Send", "priya@example.com", "Your order ord-1 is confirmed", mock.AnythingOfType("string")).Return(nil)

	assert.NoError(t, service.Notify("ord-1"))

	m.AssertExpectations(t)
	body := m.Calls[0].Arguments.String(2)
	assert.Contains(t, body, "Priya Sharma")
	assert.Contains(t, body, "prod-1 x2")
	assert.Contains(t, body, "SAVE10")
	assert.Contains(t, body, "628.20 INR")
	assert.Contains(t, body, "560001")
}

func TestNotifyOmitsCouponLineWithoutDiscount(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	m := new(mockMailer)
	service := NewNotificationService(orderRepo, m)

	order := confirmedOrder()
	order.CouponCode = ""
	order.DiscountAmount = 0
	orderRepo.On("GetByID", "ord-1").Return(order, nil)
	m.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, service.Notify("ord-1"))

	body := m.Calls[0].Arguments.String(2)
	assert.NotContains(t, body, "Coupon")
}

func TestNotifyUnknownOrder(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	m := new(mockMailer)
	service := NewNotificationService(orderRepo, m)

	orderRepo.On("GetByID", "missing").Return(nil, errors.New("not found"))

	assert.ErrorIs(t, service.Notify("missing"), ErrOrderNotFound)
	m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyMailerFailure(t *testing.T) {
	orderRepo := new(mockOrderRepository)
	m := new(mockMailer)
	service := NewNotificationService(orderRepo, m)

	orderRepo.On("GetByID", "ord-1").Return(confirmedOrder(), nil)
	m.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp unreachable"))

	err := service.Notify("ord-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "confirmation email")
}
