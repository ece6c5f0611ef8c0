package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
	pkgerrors "github.com/mitraternak/kandang-backend/pkg/errors"
	"github.com/mitraternak/kandang-backend/pkg/pagination"
	"github.com/mitraternak/kandang-backend/pkg/storage/spaces"
)

const storageCategory = "inventory"

type inventoryRepository interface {
	Create(ctx context.Context, inv *models.Inventory) (*models.Inventory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Inventory, error)
	ListByKandang(ctx context.Context, q ListQuery) ([]models.Inventory, error)
	CountByKandang(ctx context.Context, q ListQuery) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, inv *models.Inventory) error
}

type imageRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, images []models.InventoryImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryImage, error)
	FindByInventoryIDs(ctx context.Context, ids []uuid.UUID) ([]models.InventoryImage, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type logRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.InventoryLog) error
	ListByInventory(ctx context.Context, inventoryID uuid.UUID) ([]models.InventoryLog, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type objectStore interface {
	Upload(ctx context.Context, body io.Reader, size int64, name, category string) (string, error)
	Delete(ctx context.Context, key, category string) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the inventory operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) error
	ListByKandang(ctx context.Context, input ListInput) (*ListResult, error)
	Detail(ctx context.Context, id uuid.UUID) (*models.Inventory, error)
	History(ctx context.Context, id uuid.UUID) ([]models.InventoryLog, error)
	Update(ctx context.Context, id, actorID uuid.UUID, input UpdateInput) error
	Delete(ctx context.Context, id, actorID uuid.UUID) error
}

type service struct {
	repo    inventoryRepository
	images  imageRepository
	logs    logRepository
	users   userRepository
	storage objectStore
	tx      transactor
	now     func() time.Time
}

// NewService constructs an inventory service backed by the provided
// repositories, object store and transaction runner.
func NewService(repo inventoryRepository, images imageRepository, logs logRepository, users userRepository, storage objectStore, tx transactor) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if images == nil {
		return nil, fmt.Errorf("image repository required")
	}
	if logs == nil {
		return nil, fmt.Errorf("log repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if storage == nil {
		return nil, fmt.Errorf("object store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor required")
	}
	return &service{
		repo:    repo,
		images:  images,
		logs:    logs,
		users:   users,
		storage: storage,
		tx:      tx,
		now:     time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) error {
	if len(input.Files) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no file uploaded")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.IDKandang == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "idKandang is required")
	}

	inv, err := s.repo.Create(ctx, &models.Inventory{
		Name:      name,
		Stock:     input.Stock,
		Jenis:     strings.TrimSpace(input.Jenis),
		IDKandang: input.IDKandang,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory")
	}

	urls, err := s.uploadFiles(ctx, input.Files)
	if err != nil {
		return err
	}

	rows := make([]models.InventoryImage, 0, len(urls))
	for _, url := range urls {
		rows = append(rows, models.InventoryImage{URL: url, IDInventory: inv.ID})
	}
	if err := s.images.CreateBatch(ctx, nil, rows); err != nil {
		err = multierr.Append(err, s.removeBlobs(ctx, urls))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist inventory images")
	}

	return nil
}

func (s *service) ListByKandang(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.IDKandang == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "idKandang is required")
	}

	params := pagination.Params{Page: input.Page, PageSize: input.PageSize}.Normalize()
	query := ListQuery{
		IDKandang: input.IDKandang,
		Name:      input.Name,
		Jenis:     input.Jenis,
		Offset:    params.Offset(),
		Limit:     params.Limit(),
	}

	total, err := s.repo.CountByKandang(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count inventory")
	}

	records, err := s.repo.ListByKandang(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}

	if err := s.attachImages(ctx, records); err != nil {
		return nil, err
	}

	return &ListResult{
		TotalCount: total,
		TotalPages: params.TotalPages(total),
		Page:       params.Page,
		PageSize:   params.PageSize,
		Records:    records,
	}, nil
}

func (s *service) Detail(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "inventory not found")
	}
	records := []models.Inventory{*inv}
	if err := s.attachImages(ctx, records); err != nil {
		return nil, err
	}
	return &records[0], nil
}

func (s *service) History(ctx context.Context, id uuid.UUID) ([]models.InventoryLog, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "inventory not found")
	}
	logs, err := s.logs.ListByInventory(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory logs")
	}
	return logs, nil
}

func (s *service) Update(ctx context.Context, id, actorID uuid.UUID, input UpdateInput) error {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "inventory not found")
	}

	user, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return notFoundOr(err, "user not found")
	}
	actor := Actor{Nama: user.Nama, Role: user.Role}

	// Blob work happens outside the transaction: storage operations cannot
	// be rolled back, so rows are only touched once the blobs are settled.
	deleteRowIDs, err := s.resolveImageDeletions(ctx, inv.ID, input.DeletedImageIDs)
	if err != nil {
		return err
	}

	urls, err := s.uploadFiles(ctx, input.Files)
	if err != nil {
		return err
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, inv.ID)
		if err != nil {
			return err
		}

		for _, entry := range diffEntries(current, input, actor) {
			record := &models.InventoryLog{
				IDInventory: current.ID,
				Keterangan:  entry.Keterangan(),
				CreatedBy:   user.ID,
			}
			if err := s.logs.Create(ctx, tx, record); err != nil {
				return err
			}
		}

		applyChanges(current, input)

		for _, rowID := range deleteRowIDs {
			if err := s.images.Delete(ctx, tx, rowID); err != nil {
				return err
			}
		}

		if len(urls) > 0 {
			rows := make([]models.InventoryImage, 0, len(urls))
			for _, url := range urls {
				rows = append(rows, models.InventoryImage{URL: url, IDInventory: current.ID})
			}
			if err := s.images.CreateBatch(ctx, tx, rows); err != nil {
				return err
			}
			record := &models.InventoryLog{
				IDInventory: current.ID,
				Keterangan:  imageChangeKeterangan(actor),
				CreatedBy:   user.ID,
			}
			if err := s.logs.Create(ctx, tx, record); err != nil {
				return err
			}
		}

		return s.repo.Save(ctx, tx, current)
	})
	if txErr != nil {
		txErr = multierr.Append(txErr, s.removeBlobs(ctx, urls))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "update inventory")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "inventory not found")
	}

	user, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return notFoundOr(err, "user not found")
	}

	inv.IsDeleted = true
	if err := s.repo.Save(ctx, nil, inv); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory")
	}

	record := &models.InventoryLog{
		IDInventory: inv.ID,
		Keterangan:  deletionKeterangan(Actor{Nama: user.Nama, Role: user.Role}, inv.Name),
		CreatedBy:   user.ID,
	}
	if err := s.logs.Create(ctx, nil, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record inventory deletion")
	}
	return nil
}

// diffEntries builds one audit entry per supplied field whose value differs
// from the stored record. Kandang reassignment deliberately produces no
// entry.
func diffEntries(inv *models.Inventory, input UpdateInput, actor Actor) []Entry {
	var entries []Entry
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" && *input.Name != inv.Name {
		entries = append(entries, Entry{Field: "name", Old: inv.Name, New: *input.Name, Actor: actor})
	}
	if input.Stock != nil && *input.Stock != inv.Stock {
		entries = append(entries, Entry{
			Field: "stock",
			Old:   fmt.Sprintf("%d", inv.Stock),
			New:   fmt.Sprintf("%d", *input.Stock),
			Actor: actor,
		})
	}
	if input.Jenis != nil && strings.TrimSpace(*input.Jenis) != "" && *input.Jenis != inv.Jenis {
		entries = append(entries, Entry{Field: "jenis", Old: inv.Jenis, New: *input.Jenis, Actor: actor})
	}
	return entries
}

func applyChanges(inv *models.Inventory, input UpdateInput) {
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		inv.Name = *input.Name
	}
	if input.Stock != nil {
		inv.Stock = *input.Stock
	}
	if input.Jenis != nil && strings.TrimSpace(*input.Jenis) != "" {
		inv.Jenis = *input.Jenis
	}
	if input.IDKandang != nil && *input.IDKandang != uuid.Nil {
		inv.IDKandang = *input.IDKandang
	}
}

// resolveImageDeletions deletes the blobs for the requested image ids and
// returns the rows left to remove. Unknown ids and rows belonging to other
// records are skipped without error.
func (s *service) resolveImageDeletions(ctx context.Context, inventoryID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	var rowIDs []uuid.UUID
	for _, id := range ids {
		img, err := s.images.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory image")
		}
		if img.IDInventory != inventoryID {
			continue
		}
		if err := s.storage.Delete(ctx, spaces.KeyFromURL(img.URL), storageCategory); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete stored image")
		}
		rowIDs = append(rowIDs, img.ID)
	}
	return rowIDs, nil
}

// uploadFiles pushes every file to object storage. A failure mid-way removes
// the blobs already written before returning.
func (s *service) uploadFiles(ctx context.Context, files []File) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		objectName := fmt.Sprintf("Inventory-%d-%s", s.now().UnixMilli(), strings.TrimSpace(f.Name))
		url, err := s.storage.Upload(ctx, bytes.NewReader(f.Data), int64(len(f.Data)), objectName, storageCategory)
		if err != nil {
			err = multierr.Append(err, s.removeBlobs(ctx, urls))
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload file")
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// removeBlobs is best-effort cleanup after a failed write. All failures are
// collected so the caller can surface them together.
func (s *service) removeBlobs(ctx context.Context, urls []string) error {
	var errs error
	for _, url := range urls {
		if err := s.storage.Delete(ctx, spaces.KeyFromURL(url), storageCategory); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (s *service) attachImages(ctx context.Context, records []models.Inventory) error {
	if len(records) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	images, err := s.images.FindByInventoryIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory images")
	}
	byInventory := make(map[uuid.UUID][]models.InventoryImage, len(records))
	for _, img := range images {
		byInventory[img.IDInventory] = append(byInventory[img.IDInventory], img)
	}
	for i := range records {
		records[i].Images = byInventory[records[i].ID]
	}
	return nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query database")
}
