package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
)

// ListQuery narrows a per-kandang listing at the SQL level.
type ListQuery struct {
	IDKandang uuid.UUID
	Name      string
	Jenis     string
	Offset    int
	Limit     int
}

func (q ListQuery) filtered() bool {
	return strings.TrimSpace(q.Name) != "" || strings.TrimSpace(q.Jenis) != ""
}

// Repository persists inventory rows. Methods that can participate in a
// transaction accept an optional tx handle; nil falls back to the base
// connection.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create persists a new inventory record.
func (r *Repository) Create(ctx context.Context, inv *models.Inventory) (*models.Inventory, error) {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// FindByID retrieves an inventory record by ID, soft-deleted rows included.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindByIDForUpdate retrieves an inventory record under a row lock. Call it
// with a transaction handle.
func (r *Repository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListByKandang returns the non-deleted records for one kandang. Unfiltered
// listings are ordered by name ascending; supplying a name or jenis filter
// leaves the row order up to the database.
func (r *Repository) ListByKandang(ctx context.Context, q ListQuery) ([]models.Inventory, error) {
	query := r.scopedQuery(ctx, q)
	if !q.filtered() {
		query = query.Order("name ASC")
	}
	if q.Limit > 0 {
		query = query.Offset(q.Offset).Limit(q.Limit)
	}

	var records []models.Inventory
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountByKandang counts the rows ListByKandang would match before paging.
func (r *Repository) CountByKandang(ctx context.Context, q ListQuery) (int64, error) {
	var total int64
	if err := r.scopedQuery(ctx, q).Model(&models.Inventory{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Save writes the full record back.
func (r *Repository) Save(ctx context.Context, tx *gorm.DB, inv *models.Inventory) error {
	return r.conn(tx).WithContext(ctx).Save(inv).Error
}

func (r *Repository) scopedQuery(ctx context.Context, q ListQuery) *gorm.DB {
	query := r.db.WithContext(ctx).
		Where("id_kandang = ?", q.IDKandang).
		Where("is_deleted = ?", false)
	if name := strings.TrimSpace(q.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if jenis := strings.TrimSpace(q.Jenis); jenis != "" {
		query = query.Where("jenis LIKE ?", "%"+jenis+"%")
	}
	return query
}
