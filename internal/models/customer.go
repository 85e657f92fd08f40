package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a buying account belonging to a tenant. Incoming email
// orders name customers free-form; resolution against this table is
// best-effort and a miss is not fatal to order creation.
type Customer struct {
	ID           string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID     string         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BusinessName string         `gorm:"not null;index" json:"business_name"`
	ContactName  string         `json:"contact_name,omitempty"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Customer model
func (Customer) TableName() string {
	return "customers"
}
