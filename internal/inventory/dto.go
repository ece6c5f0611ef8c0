package inventory

import (
	"github.com/google/uuid"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
)

// File is one upload held in memory until it reaches object storage.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// CreateInput models a new inventory record plus its mandatory attachments.
type CreateInput struct {
	Name      string
	Stock     int
	Jenis     string
	IDKandang uuid.UUID
	Files     []File
}

// ListInput filters and paginates a per-kandang listing.
type ListInput struct {
	IDKandang uuid.UUID
	Name      string
	Jenis     string
	Page      int
	PageSize  int
}

// ListResult carries one page of inventory records with their own images.
type ListResult struct {
	TotalCount int64              `json:"totalCount"`
	TotalPages int                `json:"totalPages"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	Records    []models.Inventory `json:"records"`
}

// UpdateInput carries the optional mutations for one inventory record. Nil
// fields are left untouched.
type UpdateInput struct {
	Name            *string
	Stock           *int
	Jenis           *string
	IDKandang       *uuid.UUID
	DeletedImageIDs []uuid.UUID
	Files           []File
}
