package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hadiah/internal/models"
)

// MockCouponRepository is an in-memory implementation of CouponRepository.
type MockCouponRepository struct {
	coupons map[string]models.Coupon // keyed by lowercased code
	mu      sync.RWMutex
}

// NewMockCouponRepository creates a new instance of MockCouponRepository.
func NewMockCouponRepository() *MockCouponRepository {
	return &MockCouponRepository{
		coupons: make(map[string]models.Coupon),
	}
}

// GetByCode returns an active coupon by its code, case-insensitively.
func (r *MockCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coupon, ok := r.coupons[strings.ToLower(code)]
	if !ok || !coupon.Active {
		return nil, fmt.Errorf("coupon with code %s not found", code)
	}
	return &coupon, nil
}

// GetAll returns all active coupons.
func (r *MockCouponRepository) GetAll() ([]models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	couponList := make([]models.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		if c.Active {
			couponList = append(couponList, c)
		}
	}
	return couponList, nil
}

// Create adds a new coupon.
func (r *MockCouponRepository) Create(coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	r.coupons[strings.ToLower(coupon.Code)] = *coupon
	return nil
}
