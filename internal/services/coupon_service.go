package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"hadiah/internal/models"
	"hadiah/internal/repositories"
)

// Coupon validation failures. Handlers map these onto user-facing messages;
// the service itself never notifies anyone.
var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExpired  = errors.New("coupon has expired")
	ErrBelowMinimum   = errors.New("order amount below coupon minimum")
	ErrUsageExceeded  = errors.New("coupon usage limit reached")
)

// CouponService handles coupon eligibility and discount calculation.
type CouponService struct {
	repo repositories.CouponRepository
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repositories.CouponRepository) *CouponService {
	return &CouponService{
		repo: repo,
	}
}

// Validate checks a coupon code against the active coupon set for the given
// order amount. The code match is case-insensitive. Validate never mutates
// the coupon's usage count; redemption accounting happens elsewhere.
func (s *CouponService) Validate(code string, orderAmount float64) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" || orderAmount < 0 {
		return nil, ErrCouponNotFound
	}

	coupon, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, ErrCouponNotFound
	}
	if coupon.ValidUntil != nil && coupon.ValidUntil.Before(time.Now()) {
		return nil, ErrCouponExpired
	}
	if orderAmount < coupon.MinOrderAmount {
		return nil, ErrBelowMinimum
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return nil, ErrUsageExceeded
	}
	return coupon, nil
}

// CalculateDiscount returns the discount the coupon grants on orderAmount.
// The discount never exceeds the order amount, so totals cannot go negative.
func (s *CouponService) CalculateDiscount(orderAmount float64, coupon *models.Coupon) float64 {
	var discount float64
	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = orderAmount * coupon.DiscountValue / 100
	case models.DiscountFixed:
		discount = coupon.DiscountValue
	}
	return math.Min(discount, orderAmount)
}
