package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount kinds a coupon can grant.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon represents a promotional coupon. Coupons are seeded up front; the
// only mutation over their lifetime is the usage counter, which is
// incremented by redemption accounting outside this service.
type Coupon struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code           string     `json:"code" gorm:"uniqueIndex;type:varchar(64)" validate:"required,min=3,max=64"`
	DiscountType   string     `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue  float64    `json:"discount_value" validate:"required,gte=0"`
	MinOrderAmount float64    `json:"min_order_amount" validate:"gte=0"`
	MaxUses        int        `json:"max_uses" validate:"gte=0"` // 0 means unlimited
	UsedCount      int        `json:"used_count"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	Active         bool       `json:"active"`
	gorm.Model                // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
