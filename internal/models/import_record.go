package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImportStatus defines the lifecycle of an email import
type ImportStatus string

const (
	ImportStatusProcessing ImportStatus = "processing" // Claimed, run in flight
	ImportStatusSuccess    ImportStatus = "success"    // Order created, every item matched
	ImportStatusPartial    ImportStatus = "partial"    // Order created, some items unmatched
	ImportStatusFailed     ImportStatus = "failed"     // No order created
)

// ImportRecord is the audit and idempotency row for one inbound email.
// The unique constraint on MessageID is the sole concurrency defense:
// whoever inserts first owns the run, everyone else sees a duplicate.
// Rows are never deleted by the ingestion pipeline.
type ImportRecord struct {
	ID           string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID     string         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	MessageID    string         `gorm:"uniqueIndex;not null" json:"message_id"`
	Sender       string         `json:"sender"`
	Subject      string         `json:"subject"`
	ReceivedAt   time.Time      `json:"received_at"`
	Status       ImportStatus   `gorm:"type:varchar(50);default:'processing';index" json:"status"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	OrderID      *string        `gorm:"type:uuid;index" json:"order_id,omitempty"`
	RawData      datatypes.JSON `json:"raw_data"` // parsed/matched snapshot for forensics

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for ImportRecord model
func (ImportRecord) TableName() string {
	return "import_records"
}

// IsTerminal reports whether the record has reached a final status
func (r *ImportRecord) IsTerminal() bool {
	return r.Status != ImportStatusProcessing
}
