package repositories

import "hadiah/internal/models"

// OrderRepository defines the interface for order data access. Create must
// persist the order row and all of its item rows atomically; a partial
// write is treated as a failed checkout attempt.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	UpdatePayment(id string, paymentStatus, status, paymentRef string) error
}
