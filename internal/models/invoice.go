package models

import (
	"time"

	"gorm.io/gorm"
)

// InvoiceSyncStatus tracks the outcome of pushing an invoice to the
// external accounting system
type InvoiceSyncStatus string

const (
	InvoiceSyncPending         InvoiceSyncStatus = "pending"
	InvoiceSyncSynced          InvoiceSyncStatus = "synced"
	InvoiceSyncNotConnected    InvoiceSyncStatus = "not_connected"
	InvoiceSyncMissingFields   InvoiceSyncStatus = "missing_fields"
	InvoiceSyncValidationError InvoiceSyncStatus = "validation_error"
)

// Invoice is raised when an order is approved. LedgerInvoiceID holds the
// external accounting system's id once the push succeeds.
type Invoice struct {
	ID              string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID        string            `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OrderID         string            `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	InvoiceNumber   string            `gorm:"uniqueIndex;not null" json:"invoice_number"`
	Subtotal        float64           `json:"subtotal"`
	Tax             float64           `json:"tax"`
	Total           float64           `json:"total"`
	SyncStatus      InvoiceSyncStatus `gorm:"type:varchar(50);default:'pending';index" json:"sync_status"`
	SyncError       string            `gorm:"type:text" json:"sync_error,omitempty"`
	LedgerInvoiceID string            `gorm:"type:varchar(100)" json:"ledger_invoice_id,omitempty"`

	IssuedAt  time.Time      `json:"issued_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName specifies the table name for Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// BeforeCreate generates an invoice number before creating
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = generateOrderNumber("INV")
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now().UTC()
	}
	return nil
}
