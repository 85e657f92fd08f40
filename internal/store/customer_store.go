package store

import (
	"context"

	"github.com/jyelen1110/alfies-server/internal/database"
	"github.com/jyelen1110/alfies-server/internal/models"
)

// CustomerStore reads customer accounts
type CustomerStore struct {
	db *database.DB
}

// NewCustomerStore creates a customer store
func NewCustomerStore(db *database.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// ActiveCustomers returns all active customers of a tenant, the candidate
// set for name resolution
func (s *CustomerStore) ActiveCustomers(ctx context.Context, tenantID string) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Find(&customers).Error
	return customers, err
}
