package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus defines possible order statuses
type OrderStatus string

const (
	OrderStatusPendingApproval OrderStatus = "pending_approval" // Awaiting owner review
	OrderStatusApproved        OrderStatus = "approved"         // Approved, invoice raised
	OrderStatusCompleted       OrderStatus = "completed"        // Fulfilled
	OrderStatusCancelled       OrderStatus = "cancelled"        // Cancelled
)

// OrderSource identifies how an order entered the system
type OrderSource string

const (
	OrderSourceManual OrderSource = "manual" // Created through the app
	OrderSourceEmail  OrderSource = "email"  // Ingested from an inbound email
)

// Order represents a wholesale order. Email-ingested orders start in
// pending_approval and carry ingestion context in Notes and Metadata.
type Order struct {
	ID          string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"order_number"`
	TenantID    string      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SupplierID  string      `gorm:"type:uuid;not null;index" json:"supplier_id"`
	CustomerID  *string     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Source      OrderSource `gorm:"type:varchar(50);default:'manual';index" json:"source"`
	Status      OrderStatus `gorm:"type:varchar(50);default:'pending_approval';index" json:"status"`

	// Computed totals
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	Notes    string         `gorm:"type:text" json:"notes"`
	Metadata datatypes.JSON `json:"metadata"`

	ApprovedAt *time.Time     `json:"approved_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate generates an order number before creating
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = generateOrderNumber("ORD")
	}
	return nil
}

// generateOrderNumber creates a unique order number, e.g. ORD20260830-4F2A
func generateOrderNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return prefix + time.Now().UTC().Format("20060102") + "-" + suffix
}

// OrderItem is one line of an order. Ledger codes are copied from the
// matched inventory item so the accounting export does not depend on
// later catalog edits.
type OrderItem struct {
	ID                string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OrderID           string  `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID            string  `gorm:"type:uuid;not null;index" json:"item_id"`
	Name              string  `gorm:"not null" json:"name"`
	Quantity          float64 `gorm:"not null" json:"quantity"`
	Unit              string  `gorm:"type:varchar(50)" json:"unit,omitempty"`
	UnitPrice         float64 `json:"unit_price"`
	TaxRate           float64 `json:"tax_rate"`
	LedgerItemCode    string  `gorm:"type:varchar(100)" json:"ledger_item_code,omitempty"`
	LedgerAccountCode string  `gorm:"type:varchar(100)" json:"ledger_account_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
