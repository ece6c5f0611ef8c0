package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
)

// ImageRepository persists inventory image rows.
type ImageRepository struct {
	db *gorm.DB
}

// NewImageRepository constructs an image repository bound to the provided GORM DB.
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// CreateBatch inserts the image rows in one statement.
func (r *ImageRepository) CreateBatch(ctx context.Context, tx *gorm.DB, images []models.InventoryImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).Create(&images).Error
}

// FindByID retrieves one image row.
func (r *ImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryImage, error) {
	var img models.InventoryImage
	if err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

// FindByInventoryIDs returns all images belonging to the given records.
func (r *ImageRepository) FindByInventoryIDs(ctx context.Context, ids []uuid.UUID) ([]models.InventoryImage, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var images []models.InventoryImage
	if err := r.db.WithContext(ctx).Where("id_inventory IN ?", ids).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Delete removes one image row.
func (r *ImageRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryImage{}).Error
}
