package services

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hadiah/internal/models"
	"hadiah/internal/repositories"
)

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func seedCouponRepo(t *testing.T) *repositories.MockCouponRepository {
	t.Helper()
	repo := repositories.NewMockCouponRepository()

	expired := time.Now().Add(-24 * time.Hour)
	coupons := []models.Coupon{
		{Code: "SAVE10", DiscountType: models.DiscountPercentage, DiscountValue: 10, MinOrderAmount: 500, Active: true},
		{Code: "FLAT100", DiscountType: models.DiscountFixed, DiscountValue: 100, MinOrderAmount: 999, Active: true},
		{Code: "FESTIVE30", DiscountType: models.DiscountFixed, DiscountValue: 30, Active: true},
		{Code: "EXPIRED1", DiscountType: models.DiscountPercentage, DiscountValue: 50, ValidUntil: &expired, Active: true},
		{Code: "MAXEDOUT", DiscountType: models.DiscountFixed, DiscountValue: 50, MaxUses: 5, UsedCount: 5, Active: true},
		{Code: "DISABLED", DiscountType: models.DiscountFixed, DiscountValue: 50, Active: false},
	}
	for i := range coupons {
		assert.NoError(t, repo.Create(&coupons[i]))
	}
	return repo
}

func TestValidateCoupon(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	coupon, err := service.Validate("SAVE10", 500)
	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
}

func TestValidateCouponCaseInsensitive(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	coupon, err := service.Validate("save10", 500)
	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
}

func TestValidateCouponTrimsWhitespace(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	coupon, err := service.Validate("  SAVE10  ", 500)
	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
}

func TestValidateCouponNotFound(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	_, err := service.Validate("NOPE", 500)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestValidateCouponEmptyCode(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	_, err := service.Validate("   ", 500)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestValidateCouponNegativeAmount(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	_, err := service.Validate("SAVE10", -1)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestValidateCouponInactive(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	_, err := service.Validate("DISABLED", 500)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestValidateCouponExpired(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	_, err := service.Validate("EXPIRED1", 500)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestValidateCouponBelowMinimum(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	_, err := service.Validate("SAVE10", 499)
	assert.ErrorIs(t, err, ErrBelowMinimum)
}

func TestValidateCouponUsageExceeded(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	_, err := service.Validate("MAXEDOUT", 500)
	assert.ErrorIs(t, err, ErrUsageExceeded)
}

func TestCalculateDiscountPercentage(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))
	coupon := &models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 10}

	assert.InDelta(t, 50.0, service.CalculateDiscount(500, coupon), 0.001)
}

func TestCalculateDiscountFixed(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))
	coupon := &models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 100}

	assert.InDelta(t, 100.0, service.CalculateDiscount(1000, coupon), 0.001)
}

func TestCalculateDiscountNeverExceedsOrderAmount(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))

	fixed := &models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 500}
	assert.InDelta(t, 300.0, service.CalculateDiscount(300, fixed), 0.001)

	percentage := &models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 150}
	assert.InDelta(t, 200.0, service.CalculateDiscount(200, percentage), 0.001)
}

func TestCalculateDiscountZeroAmount(t *testing.T) {
	service := NewCouponService(seedCouponRepo(t))
	coupon := &models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 100}

	assert.Zero(t, service.CalculateDiscount(0, coupon))
}
