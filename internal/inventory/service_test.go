package inventory

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
	pkgerrors "github.com/mitraternak/kandang-backend/pkg/errors"
)

type stubRepo struct {
	items    map[uuid.UUID]*models.Inventory
	saved    []models.Inventory
	count    int64
	listErr  error
	countErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: map[uuid.UUID]*models.Inventory{}}
}

func (r *stubRepo) add(inv models.Inventory) *models.Inventory {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	copied := inv
	r.items[copied.ID] = &copied
	return &copied
}

func (r *stubRepo) Create(_ context.Context, inv *models.Inventory) (*models.Inventory, error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	copied := *inv
	r.items[inv.ID] = &copied
	return inv, nil
}

func (r *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Inventory, error) {
	inv, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *inv
	return &copied, nil
}

func (r *stubRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*models.Inventory, error) {
	return r.FindByID(ctx, id)
}

func (r *stubRepo) ListByKandang(_ context.Context, q ListQuery) ([]models.Inventory, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Inventory
	for _, inv := range r.items {
		if inv.IDKandang == q.IDKandang && !inv.IsDeleted {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubRepo) CountByKandang(_ context.Context, q ListQuery) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	if r.count > 0 {
		return r.count, nil
	}
	var total int64
	for _, inv := range r.items {
		if inv.IDKandang == q.IDKandang && !inv.IsDeleted {
			total++
		}
	}
	return total, nil
}

func (r *stubRepo) Save(_ context.Context, _ *gorm.DB, inv *models.Inventory) error {
	copied := *inv
	r.items[inv.ID] = &copied
	r.saved = append(r.saved, copied)
	return nil
}

type stubImages struct {
	rows     map[uuid.UUID]models.InventoryImage
	created  []models.InventoryImage
	deleted  []uuid.UUID
	batchErr error
}

func newStubImages() *stubImages {
	return &stubImages{rows: map[uuid.UUID]models.InventoryImage{}}
}

func (r *stubImages) add(img models.InventoryImage) models.InventoryImage {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	r.rows[img.ID] = img
	return img
}

func (r *stubImages) CreateBatch(_ context.Context, _ *gorm.DB, images []models.InventoryImage) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	for _, img := range images {
		if img.ID == uuid.Nil {
			img.ID = uuid.New()
		}
		r.rows[img.ID] = img
		r.created = append(r.created, img)
	}
	return nil
}

func (r *stubImages) FindByID(_ context.Context, id uuid.UUID) (*models.InventoryImage, error) {
	img, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &img, nil
}

func (r *stubImages) FindByInventoryIDs(_ context.Context, ids []uuid.UUID) ([]models.InventoryImage, error) {
	var out []models.InventoryImage
	for _, id := range ids {
		for _, img := range r.rows {
			if img.IDInventory == id {
				out = append(out, img)
			}
		}
	}
	return out, nil
}

func (r *stubImages) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.rows, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubLogs struct {
	entries []models.InventoryLog
}

func (r *stubLogs) Create(_ context.Context, _ *gorm.DB, entry *models.InventoryLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubLogs) ListByInventory(_ context.Context, id uuid.UUID) ([]models.InventoryLog, error) {
	var out []models.InventoryLog
	for _, entry := range r.entries {
		if entry.IDInventory == id {
			out = append(out, entry)
		}
	}
	return out, nil
}

type stubUsers struct {
	users map[uuid.UUID]*models.User
}

func newStubUsers() *stubUsers {
	return &stubUsers{users: map[uuid.UUID]*models.User{}}
}

func (r *stubUsers) add(nama, role string) *models.User {
	u := &models.User{ID: uuid.New(), Nama: nama, Role: role}
	r.users[u.ID] = u
	return u
}

func (r *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeObjectStore struct {
	uploads   []string
	deleted   []string
	uploadErr error
}

func (s *fakeObjectStore) Upload(_ context.Context, _ io.Reader, _ int64, name, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads = append(s.uploads, name)
	return "https://bucket.sgp1.digitaloceanspaces.com/inventory/" + name, nil
}

func (s *fakeObjectStore) Delete(_ context.Context, key, _ string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubRepo, images *stubImages, logs *stubLogs, users *stubUsers, store objectStore) *service {
	t.Helper()
	svc, err := NewService(repo, images, logs, users, store, stubTx{})
	require.NoError(t, err)
	s := svc.(*service)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestCreateRequiresFiles(t *testing.T) {
	s := newTestService(t, newStubRepo(), newStubImages(), &stubLogs{}, newStubUsers(), &fakeObjectStore{})

	err := s.Create(context.Background(), CreateInput{Name: "Pakan", IDKandang: uuid.New()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "no file uploaded", typed.Message())
}

func TestCreatePersistsOneImagePerFile(t *testing.T) {
	repo := newStubRepo()
	images := newStubImages()
	store := &fakeObjectStore{}
	s := newTestService(t, repo, images, &stubLogs{}, newStubUsers(), store)

	err := s.Create(context.Background(), CreateInput{
		Name:      "Pakan Starter",
		Stock:     10,
		Jenis:     "pakan",
		IDKandang: uuid.New(),
		Files: []File{
			{Name: "a.jpg", Data: []byte("a")},
			{Name: "b.jpg", Data: []byte("b")},
			{Name: "c.jpg", Data: []byte("c")},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.items, 1)
	var invID uuid.UUID
	for id := range repo.items {
		invID = id
	}
	require.Len(t, images.created, 3)
	require.Len(t, store.uploads, 3)
	assert.Equal(t, "Inventory-1700000000000-a.jpg", store.uploads[0])
	for _, img := range images.created {
		assert.Equal(t, invID, img.IDInventory)
	}
}

func TestCreateCleansUpBlobsWhenImageRowsFail(t *testing.T) {
	repo := newStubRepo()
	images := newStubImages()
	images.batchErr = errors.New("insert failed")
	store := &fakeObjectStore{}
	s := newTestService(t, repo, images, &stubLogs{}, newStubUsers(), store)

	err := s.Create(context.Background(), CreateInput{
		Name:      "Pakan",
		IDKandang: uuid.New(),
		Files:     []File{{Name: "a.jpg", Data: []byte("a")}, {Name: "b.jpg", Data: []byte("b")}},
	})
	require.Error(t, err)
	assert.Len(t, store.deleted, 2)
}

func TestListByKandangPartitionsImagesPerRecord(t *testing.T) {
	repo := newStubRepo()
	images := newStubImages()
	kandangID := uuid.New()
	first := repo.add(models.Inventory{Name: "Pakan", IDKandang: kandangID})
	second := repo.add(models.Inventory{Name: "Vitamin", IDKandang: kandangID})
	images.add(models.InventoryImage{IDInventory: first.ID, URL: "https://cdn/a.jpg"})
	images.add(models.InventoryImage{IDInventory: first.ID, URL: "https://cdn/b.jpg"})
	images.add(models.InventoryImage{IDInventory: second.ID, URL: "https://cdn/c.jpg"})

	s := newTestService(t, repo, images, &stubLogs{}, newStubUsers(), &fakeObjectStore{})

	result, err := s.ListByKandang(context.Background(), ListInput{IDKandang: kandangID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)
	for _, rec := range result.Records {
		switch rec.ID {
		case first.ID:
			assert.Len(t, rec.Images, 2)
		case second.ID:
			assert.Len(t, rec.Images, 1)
		default:
			t.Fatalf("unexpected record %s", rec.ID)
		}
	}
}

func TestListByKandangExcludesSoftDeleted(t *testing.T) {
	repo := newStubRepo()
	kandangID := uuid.New()
	repo.add(models.Inventory{Name: "Pakan", IDKandang: kandangID})
	repo.add(models.Inventory{Name: "Obat", IDKandang: kandangID, IsDeleted: true})

	s := newTestService(t, repo, newStubImages(), &stubLogs{}, newStubUsers(), &fakeObjectStore{})

	result, err := s.ListByKandang(context.Background(), ListInput{IDKandang: kandangID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Pakan", result.Records[0].Name)
}

func TestDetailReturnsNotFound(t *testing.T) {
	s := newTestService(t, newStubRepo(), newStubImages(), &stubLogs{}, newStubUsers(), &fakeObjectStore{})

	_, err := s.Detail(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDetailReturnsSoftDeletedRecord(t *testing.T) {
	repo := newStubRepo()
	inv := repo.add(models.Inventory{Name: "Pakan", IDKandang: uuid.New(), IsDeleted: true})

	s := newTestService(t, repo, newStubImages(), &stubLogs{}, newStubUsers(), &fakeObjectStore{})

	got, err := s.Detail(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}

func TestUpdateLogsEachChangedField(t *testing.T) {
	repo := newStubRepo()
	logs := &stubLogs{}
	users := newStubUsers()
	actor := users.add("Budi", "pekerja")
	inv := repo.add(models.Inventory{Name: "Pakan", Stock: 5, Jenis: "pakan", IDKandang: uuid.New()})

	s := newTestService(t, repo, newStubImages(), logs, users, &fakeObjectStore{})

	newName := "Pakan Starter"
	newStock := 12
	err := s.Update(context.Background(), inv.ID, actor.ID, UpdateInput{
		Name:  &newName,
		Stock: &newStock,
	})
	require.NoError(t, err)

	require.Len(t, logs.entries, 2)
	assert.Equal(t, "Budi (as pekerja) changed name from Pakan to Pakan Starter", logs.entries[0].Keterangan)
	assert.Equal(t, "Budi (as pekerja) changed stock from 5 to 12", logs.entries[1].Keterangan)

	updated, err := repo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pakan Starter", updated.Name)
	assert.Equal(t, 12, updated.Stock)
}

func TestUpdateSkipsUnchangedFields(t *testing.T) {
	repo := newStubRepo()
	logs := &stubLogs{}
	users := newStubUsers()
	actor := users.add("Budi", "pekerja")
	inv := repo.add(models.Inventory{Name: "Pakan", Stock: 5, Jenis: "pakan", IDKandang: uuid.New()})

	s := newTestService(t, repo, newStubImages(), logs, users, &fakeObjectStore{})

	sameName := "Pakan"
	sameStock := 5
	err := s.Update(context.Background(), inv.ID, actor.ID, UpdateInput{
		Name:  &sameName,
		Stock: &sameStock,
	})
	require.NoError(t, err)
	assert.Empty(t, logs.entries)
}

func TestUpdateReassignsKandangSilently(t *testing.T) {
	repo := newStubRepo()
	logs := &stubLogs{}
	users := newStubUsers()
	actor := users.add("Budi", "pekerja")
	inv := repo.add(models.Inventory{Name: "Pakan", IDKandang: uuid.New()})

	s := newTestService(t, repo, newStubImages(), logs, users, &fakeObjectStore{})

	target := uuid.New()
	err := s.Update(context.Background(), inv.ID, actor.ID, UpdateInput{IDKandang: &target})
	require.NoError(t, err)

	assert.Empty(t, logs.entries)
	updated, err := repo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, target, updated.IDKandang)
}

func TestUpdateDeletesImagesAndSkipsMissingIDs(t *testing.T) {
	repo := newStubRepo()
	images := newStubImages()
	users := newStubUsers()
	actor := users.add("Budi", "pekerja")
	inv := repo.add(models.Inventory{Name: "Pakan", IDKandang: uuid.New()})
	img := images.add(models.InventoryImage{IDInventory: inv.ID, URL: "https://cdn/inventory/a.jpg"})
	store := &fakeObjectStore{}

	s := newTestService(t, repo, images, &stubLogs{}, users, store)

	err := s.Update(context.Background(), inv.ID, actor.ID, UpdateInput{
		DeletedImageIDs: []uuid.UUID{img.ID, uuid.New()},
	})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{img.ID}, images.deleted)
	assert.Equal(t, []string{"a.jpg"}, store.deleted)
}

func TestUpdateUploadsFilesAndLogsImageChange(t *testing.T) {
	repo := newStubRepo()
	images := newStubImages()
	logs := &stubLogs{}
	users := newStubUsers()
	actor := users.add("Siti", "pemilik")
	inv := repo.add(models.Inventory{Name: "Pakan", IDKandang: uuid.New()})
	store := &fakeObjectStore{}

	s := newTestService(t, repo, images, logs, users, store)

	err := s.Update(context.Background(), inv.ID, actor.ID, UpdateInput{
		Files: []File{{Name: "new.jpg", Data: []byte("x")}},
	})
	require.NoError(t, err)

	require.Len(t, images.created, 1)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "Siti changed image", logs.entries[0].Keterangan)
}

func TestUpdateReturnsNotFoundForMissingActor(t *testing.T) {
	repo := newStubRepo()
	inv := repo.add(models.Inventory{Name: "Pakan", IDKandang: uuid.New()})

	s := newTestService(t, repo, newStubImages(), &stubLogs{}, newStubUsers(), &fakeObjectStore{})

	err := s.Update(context.Background(), inv.ID, uuid.New(), UpdateInput{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "user not found", typed.Message())
}

func TestDeleteSoftDeletesAndWritesTerminalLog(t *testing.T) {
	repo := newStubRepo()
	logs := &stubLogs{}
	users := newStubUsers()
	actor := users.add("Siti", "pemilik")
	inv := repo.add(models.Inventory{Name: "Pakan Starter", IDKandang: uuid.New()})

	s := newTestService(t, repo, newStubImages(), logs, users, &fakeObjectStore{})

	err := s.Delete(context.Background(), inv.ID, actor.ID)
	require.NoError(t, err)

	deleted, err := repo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, "Siti (as pemilik) deleted Pakan Starter", logs.entries[0].Keterangan)
	assert.Equal(t, actor.ID, logs.entries[0].CreatedBy)
}

func TestFullLifecycleProducesOrderedAuditTrail(t *testing.T) {
	repo := newStubRepo()
	images := newStubImages()
	logs := &stubLogs{}
	users := newStubUsers()
	actor := users.add("Budi", "pekerja")
	store := &fakeObjectStore{}

	s := newTestService(t, repo, images, logs, users, store)

	err := s.Create(context.Background(), CreateInput{
		Name:      "Pakan",
		Stock:     5,
		Jenis:     "pakan",
		IDKandang: uuid.New(),
		Files:     []File{{Name: "a.jpg", Data: []byte("a")}},
	})
	require.NoError(t, err)
	require.Len(t, repo.items, 1)
	var invID uuid.UUID
	for id := range repo.items {
		invID = id
	}

	newStock := 9
	require.NoError(t, s.Update(context.Background(), invID, actor.ID, UpdateInput{Stock: &newStock}))
	require.NoError(t, s.Delete(context.Background(), invID, actor.ID))

	trail, err := logs.ListByInventory(context.Background(), invID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "Budi (as pekerja) changed stock from 5 to 9", trail[0].Keterangan)
	assert.Equal(t, "Budi (as pekerja) deleted Pakan", trail[1].Keterangan)
}
