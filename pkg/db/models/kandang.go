package models

import (
	"time"

	"github.com/google/uuid"
)

// Kandang is a physical housing unit that owns inventory items.
type Kandang struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nama       string    `gorm:"column:nama;not null" json:"nama"`
	Lokasi     string    `gorm:"column:lokasi;not null" json:"lokasi"`
	Longitude  float64   `gorm:"column:longitude;not null" json:"longitude"`
	Latitude   float64   `gorm:"column:latitude;not null" json:"latitude"`
	JumlahAyam int       `gorm:"column:jumlah_ayam;not null" json:"jumlah_ayam"`
	IDPemilik  uuid.UUID `gorm:"column:id_pemilik;type:uuid;not null" json:"id_pemilik"`
	Pemilik    *User     `gorm:"foreignKey:IDPemilik" json:"pemilik,omitempty"`
	IsDeleted  bool      `gorm:"column:is_deleted;not null;default:false" json:"isDeleted"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Kandang) TableName() string { return "kandang" }
