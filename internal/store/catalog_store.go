package store

import (
	"context"
	"errors"

	"github.com/jyelen1110/alfies-server/internal/database"
	"github.com/jyelen1110/alfies-server/internal/models"
	"gorm.io/gorm"
)

// CatalogStore reads supplier, inventory and alias reference data
type CatalogStore struct {
	db *database.DB
}

// NewCatalogStore creates a catalog store
func NewCatalogStore(db *database.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// DefaultSupplier returns the tenant's default active supplier, falling back
// to any active supplier. Returns (nil, nil) when the tenant has none.
func (s *CatalogStore) DefaultSupplier(ctx context.Context, tenantID string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, "active").
		Order("is_default DESC, created_at ASC").
		First(&supplier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// InventorySnapshot fetches the active inventory of one supplier plus the
// tenant's alias table, as one read-only snapshot per ingestion run.
// Catalog edits landing mid-run are observed on the next run.
func (s *CatalogStore) InventorySnapshot(ctx context.Context, tenantID, supplierID string) ([]models.InventoryItem, []models.ItemAlias, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND supplier_id = ? AND status = ?", tenantID, supplierID, "active").
		Find(&items).Error; err != nil {
		return nil, nil, err
	}

	var aliases []models.ItemAlias
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&aliases).Error; err != nil {
		return nil, nil, err
	}

	return items, aliases, nil
}

// ListItems returns the tenant's inventory for the management API
func (s *CatalogStore) ListItems(ctx context.Context, tenantID string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// CreateAlias registers an alternate document name for an inventory item
func (s *CatalogStore) CreateAlias(ctx context.Context, alias *models.ItemAlias) error {
	return s.db.WithContext(ctx).Create(alias).Error
}
