package store

import (
	"context"
	"time"

	"github.com/jyelen1110/alfies-server/internal/database"
	"github.com/jyelen1110/alfies-server/internal/models"
	"gorm.io/gorm"
)

// OrderStore persists orders, line items and invoices
type OrderStore struct {
	db *database.DB
}

// NewOrderStore creates an order store
func NewOrderStore(db *database.DB) *OrderStore {
	return &OrderStore{db: db}
}

// CreateWithItems persists an order and its line items in one transaction,
// so a failure leaves neither an order without items nor orphaned items
func (s *OrderStore) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
}

// List returns a tenant's orders, newest first
func (s *OrderStore) List(ctx context.Context, tenantID string, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// Get loads one order with its items and customer
func (s *OrderStore) Get(ctx context.Context, tenantID, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Approve moves a pending order to approved and raises its invoice in the
// same transaction. Returns the created invoice.
func (s *OrderStore) Approve(ctx context.Context, order *models.Order) (*models.Invoice, error) {
	now := time.Now().UTC()
	invoice := &models.Invoice{
		TenantID:   order.TenantID,
		OrderID:    order.ID,
		Subtotal:   order.Subtotal,
		Tax:        order.Tax,
		Total:      order.Total,
		SyncStatus: models.InvoiceSyncPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPendingApproval).
			Updates(map[string]interface{}{
				"status":      models.OrderStatusApproved,
				"approved_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(invoice).Error
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusApproved
	order.ApprovedAt = &now
	return invoice, nil
}

// GetInvoice loads an invoice with its order and line items
func (s *OrderStore) GetInvoice(ctx context.Context, tenantID, orderID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Items").
		Preload("Order.Customer").
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoiceSync records the outcome of pushing an invoice to the ledger
func (s *OrderStore) UpdateInvoiceSync(ctx context.Context, invoiceID string, status models.InvoiceSyncStatus, syncErr, ledgerInvoiceID string) error {
	return s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]interface{}{
			"sync_status":       status,
			"sync_error":        syncErr,
			"ledger_invoice_id": ledgerInvoiceID,
		}).Error
}
