package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem represents one catalog entry in a supplier's inventory
type InventoryItem struct {
	ID                string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID          string         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SupplierID        string         `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Name              string         `gorm:"not null;index" json:"name"`
	SKU               string         `gorm:"index" json:"sku,omitempty"`
	Unit              string         `gorm:"type:varchar(50)" json:"unit,omitempty"`
	WholesalePrice    float64        `json:"wholesale_price"`
	TaxRate           float64        `gorm:"default:0" json:"tax_rate"` // percent, e.g. 10 for 10%
	LedgerItemCode    string         `gorm:"type:varchar(100)" json:"ledger_item_code,omitempty"`
	LedgerAccountCode string         `gorm:"type:varchar(100)" json:"ledger_account_code,omitempty"`
	Status            string         `gorm:"type:varchar(50);default:'active';index" json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// ItemAlias maps an alternate name (as it appears on customer documents)
// to one canonical inventory item. Aliases are tenant-scoped and populated
// out of band; the matcher only reads them.
type ItemAlias struct {
	ID        string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID  string         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ItemID    string         `gorm:"type:uuid;not null;index" json:"item_id"`
	AliasName string         `gorm:"not null;index" json:"alias_name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Item *InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName specifies the table name for ItemAlias model
func (ItemAlias) TableName() string {
	return "item_aliases"
}
