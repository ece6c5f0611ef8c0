package kandang

import (
	"github.com/google/uuid"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
)

// CreateInput models a new housing unit.
type CreateInput struct {
	Nama       string  `json:"nama" validate:"required"`
	Lokasi     string  `json:"lokasi" validate:"required"`
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	JumlahAyam int     `json:"jumlah_ayam" validate:"min=0"`
}

// ListInput paginates an owner's housing units.
type ListInput struct {
	IDPemilik uuid.UUID
	Page      int
	PageSize  int
}

// ListResult carries one page of housing units.
type ListResult struct {
	TotalCount int64            `json:"totalCount"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Records    []models.Kandang `json:"records"`
}

// UpdateInput carries optional mutations. Nil fields are left untouched.
type UpdateInput struct {
	Nama       *string  `json:"nama"`
	Lokasi     *string  `json:"lokasi"`
	Longitude  *float64 `json:"longitude"`
	Latitude   *float64 `json:"latitude"`
	JumlahAyam *int     `json:"jumlah_ayam"`
}
