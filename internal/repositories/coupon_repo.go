package repositories

import "hadiah/internal/models"

// CouponRepository defines the interface for coupon data access. Lookups
// only ever see active coupons; expired or disabled codes are invisible.
type CouponRepository interface {
	GetByCode(code string) (*models.Coupon, error)
	GetAll() ([]models.Coupon, error)
	Create(coupon *models.Coupon) error
}
