package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryLog is one append-only audit entry for an inventory item. Rows are
// only ever inserted; there is no update or delete path anywhere in the code.
type InventoryLog struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IDInventory uuid.UUID `gorm:"column:id_inventory;type:uuid;not null;index" json:"id_inventory"`
	Keterangan  string    `gorm:"column:keterangan;type:text;not null" json:"keterangan"`
	CreatedBy   uuid.UUID `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	Creator     *User     `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InventoryLog) TableName() string { return "log_inventory" }
