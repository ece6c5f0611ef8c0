package kandang

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
)

// Repository persists kandang rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a kandang repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new kandang.
func (r *Repository) Create(ctx context.Context, k *models.Kandang) (*models.Kandang, error) {
	if err := r.db.WithContext(ctx).Create(k).Error; err != nil {
		return nil, err
	}
	return k, nil
}

// FindByID retrieves a kandang by ID, soft-deleted rows included.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Kandang, error) {
	var k models.Kandang
	if err := r.db.WithContext(ctx).First(&k, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

// ListByOwner returns an owner's non-deleted units ordered by nama.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]models.Kandang, error) {
	query := r.scopedQuery(ctx, ownerID).Order("nama ASC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	var records []models.Kandang
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountByOwner counts the rows ListByOwner would match before paging.
func (r *Repository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	if err := r.scopedQuery(ctx, ownerID).Model(&models.Kandang{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Save writes the full record back.
func (r *Repository) Save(ctx context.Context, k *models.Kandang) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *Repository) scopedQuery(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("id_pemilik = ?", ownerID).
		Where("is_deleted = ?", false)
}
