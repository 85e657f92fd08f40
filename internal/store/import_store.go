package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jyelen1110/alfies-server/internal/database"
	"github.com/jyelen1110/alfies-server/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// ImportStore persists import records in Postgres
type ImportStore struct {
	db *database.DB
}

// NewImportStore creates an import store
func NewImportStore(db *database.DB) *ImportStore {
	return &ImportStore{db: db}
}

// Claim inserts the processing row for a message. The unique index on
// message_id makes this a compare-and-swap: ON CONFLICT DO NOTHING turns a
// lost race into zero affected rows instead of an error, and the loser exits
// with no side effects.
func (s *ImportStore) Claim(ctx context.Context, rec *models.ImportRecord) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Finish writes the terminal status for one run
func (s *ImportStore) Finish(ctx context.Context, id string, status models.ImportStatus, errMsg string, orderID *string, raw datatypes.JSON) error {
	updates := map[string]interface{}{
		"status":        status,
		"error_message": errMsg,
	}
	if orderID != nil {
		updates["order_id"] = *orderID
	}
	if raw != nil {
		updates["raw_data"] = raw
	}
	res := s.db.WithContext(ctx).
		Model(&models.ImportRecord{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("import record %s not found", id)
	}
	return nil
}

// ReclaimStale fails processing rows older than the given age. A crash
// between claim and terminal write would otherwise leave the row stuck at
// processing forever and block any retry of that message.
func (s *ImportStore) ReclaimStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res := s.db.WithContext(ctx).
		Model(&models.ImportRecord{}).
		Where("status = ? AND created_at < ?", models.ImportStatusProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":        models.ImportStatusFailed,
			"error_message": fmt.Sprintf("processing timed out after %s (likely crash mid-run)", olderThan),
		})
	return res.RowsAffected, res.Error
}

// ListRecent returns the newest import records for a tenant
func (s *ImportStore) ListRecent(ctx context.Context, tenantID string, limit int) ([]models.ImportRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var recs []models.ImportRecord
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}

// Get loads one import record by id, scoped to the tenant
func (s *ImportStore) Get(ctx context.Context, tenantID, id string) (*models.ImportRecord, error) {
	var rec models.ImportRecord
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
