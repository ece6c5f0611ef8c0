package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the acting account referenced by audit entries. This service never
// creates or mutates users; ownership of the table belongs to the account
// service.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nama      string    `gorm:"column:nama;not null" json:"nama"`
	Role      string    `gorm:"column:role;not null" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
