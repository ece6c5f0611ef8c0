package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory is a stock item (feed, medicine, equipment) owned by a kandang.
// IsDeleted hides the row from listings without erasing it.
type Inventory struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string           `gorm:"column:name;not null" json:"name"`
	Stock     int              `gorm:"column:stock;not null;default:0" json:"stock"`
	Jenis     string           `gorm:"column:jenis;not null" json:"jenis"`
	IDKandang uuid.UUID        `gorm:"column:id_kandang;type:uuid;not null" json:"id_kandang"`
	IsDeleted bool             `gorm:"column:is_deleted;not null;default:false" json:"isDeleted"`
	Images    []InventoryImage `gorm:"foreignKey:IDInventory;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Inventory) TableName() string { return "inventory" }
