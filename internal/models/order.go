package models

import "time"

// Payment methods accepted at checkout.
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
)

// Payment status transitions pending -> paid or pending -> failed based on
// the gateway callback.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Overall order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// CartLine is a single line of the cart submitted at checkout. Price is the
// unit price snapshot taken when the item was added to the cart.
type CartLine struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// ShippingAddress is the delivery address captured at checkout. City and
// state are filled from the postal code lookup and read-only afterwards.
type ShippingAddress struct {
	FullName   string `json:"full_name" validate:"required,max=150"`
	Phone      string `json:"phone" validate:"required,min=10,max=15"`
	Street     string `json:"street" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,len=6,numeric"`
	Country    string `json:"country" validate:"omitempty,len=2"`
}

// OrderItem represents a single item within an order, with the price frozen
// at the time the order was created.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order represents a customer order, created once per checkout attempt.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"index;type:varchar(36)"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:ship_"`
	TotalAmount     float64         `json:"total_amount"`
	Currency        string          `json:"currency" gorm:"type:varchar(8)"`
	PaymentMethod   string          `json:"payment_method" gorm:"type:varchar(16)"`
	PaymentStatus   string          `json:"payment_status" gorm:"type:varchar(16)"`
	PaymentRef      string          `json:"payment_ref,omitempty" gorm:"type:varchar(64)"`
	GatewayOrderID  string          `json:"gateway_order_id,omitempty" gorm:"type:varchar(64)"`
	CouponCode      string          `json:"coupon_code,omitempty" gorm:"type:varchar(64)"`
	DiscountAmount  float64         `json:"discount_amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CheckoutRequest is the payload submitted when the user places an order.
type CheckoutRequest struct {
	CustomerName  string          `json:"customer_name" validate:"required,max=150"`
	CustomerEmail string          `json:"customer_email" validate:"required,email"`
	Address       ShippingAddress `json:"address"`
	Items         []CartLine      `json:"items" validate:"dive"`
	CouponCode    string          `json:"coupon_code" validate:"omitempty,min=3,max=64"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=razorpay cod"`
}

// PaymentSession is the ephemeral gateway handle returned to the client to
// open the payment widget. Amount is in the gateway's minor units.
type PaymentSession struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}
