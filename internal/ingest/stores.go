package ingest

import (
	"context"

	"github.com/jyelen1110/alfies-server/internal/extract"
	"github.com/jyelen1110/alfies-server/internal/models"
	"gorm.io/datatypes"
)

// Extractor turns one attachment into structured order data
type Extractor interface {
	Extract(ctx context.Context, filename, mimeType string, content []byte) (extract.Result, error)
}

// ImportStore persists the audit/idempotency row for each inbound message
type ImportStore interface {
	// Claim atomically inserts a processing record keyed on messageId.
	// Returns false without error when the message was already claimed.
	Claim(ctx context.Context, rec *models.ImportRecord) (bool, error)
	// Finish writes the single terminal update for a run
	Finish(ctx context.Context, id string, status models.ImportStatus, errMsg string, orderID *string, raw datatypes.JSON) error
}

// CatalogStore reads the tenant's supplier and inventory reference data
type CatalogStore interface {
	DefaultSupplier(ctx context.Context, tenantID string) (*models.Supplier, error)
	InventorySnapshot(ctx context.Context, tenantID, supplierID string) ([]models.InventoryItem, []models.ItemAlias, error)
}

// CustomerStore reads the tenant's customer accounts for resolution
type CustomerStore interface {
	ActiveCustomers(ctx context.Context, tenantID string) ([]models.Customer, error)
}

// OrderStore persists an order together with its line items
type OrderStore interface {
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
}
