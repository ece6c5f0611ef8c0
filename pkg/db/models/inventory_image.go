package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryImage stores the public URL of one uploaded attachment.
type InventoryImage struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	URL         string    `gorm:"column:url;not null" json:"url"`
	IDInventory uuid.UUID `gorm:"column:id_inventory;type:uuid;not null;index" json:"id_inventory"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InventoryImage) TableName() string { return "inventory_images" }
