package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
)

// LogRepository appends audit entries. The table is append-only: there is no
// update or delete method on purpose.
type LogRepository struct {
	db *gorm.DB
}

// NewLogRepository constructs a log repository bound to the provided GORM DB.
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create appends one audit entry.
func (r *LogRepository) Create(ctx context.Context, tx *gorm.DB, entry *models.InventoryLog) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

// ListByInventory returns the audit trail for one record, oldest first.
func (r *LogRepository) ListByInventory(ctx context.Context, inventoryID uuid.UUID) ([]models.InventoryLog, error) {
	var logs []models.InventoryLog
	err := r.db.WithContext(ctx).
		Where("id_inventory = ?", inventoryID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
