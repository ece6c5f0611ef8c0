package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorysvc "github.com/mitraternak/kandang-backend/internal/inventory"
	"github.com/mitraternak/kandang-backend/pkg/config"
	"github.com/mitraternak/kandang-backend/pkg/db/models"
	pkgerrors "github.com/mitraternak/kandang-backend/pkg/errors"
)

type stubInventoryService struct {
	createInput inventorysvc.CreateInput
	createErr   error
}

func (s *stubInventoryService) Create(_ context.Context, input inventorysvc.CreateInput) error {
	s.createInput = input
	return s.createErr
}

func (s *stubInventoryService) ListByKandang(context.Context, inventorysvc.ListInput) (*inventorysvc.ListResult, error) {
	return &inventorysvc.ListResult{}, nil
}

func (s *stubInventoryService) Detail(context.Context, uuid.UUID) (*models.Inventory, error) {
	return nil, nil
}

func (s *stubInventoryService) History(context.Context, uuid.UUID) ([]models.InventoryLog, error) {
	return nil, nil
}

func (s *stubInventoryService) Update(context.Context, uuid.UUID, uuid.UUID, inventorysvc.UpdateInput) error {
	return nil
}

func (s *stubInventoryService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func testMediaConfig() config.MediaConfig {
	return config.MediaConfig{MaxUploadMB: 20, MaxFileCount: 10}
}

func multipartCreateRequest(t *testing.T, name, stock, idKandang string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "a.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("stock", stock))
	require.NoError(t, mw.WriteField("idKandang", idKandang))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreateInventoryReturnsMessageOnly(t *testing.T) {
	svc := &stubInventoryService{}
	kandangID := uuid.New()

	rec := httptest.NewRecorder()
	CreateInventory(svc, testMediaConfig(), nil)(rec, multipartCreateRequest(t, "Pakan Starter", "10", kandangID.String()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"inventory created successfully"}`, rec.Body.String())

	assert.Equal(t, "Pakan Starter", svc.createInput.Name)
	assert.Equal(t, 10, svc.createInput.Stock)
	assert.Equal(t, kandangID, svc.createInput.IDKandang)
	require.Len(t, svc.createInput.Files, 1)
	assert.Equal(t, "a.jpg", svc.createInput.Files[0].Name)
}

func TestCreateInventorySurfacesServiceError(t *testing.T) {
	svc := &stubInventoryService{createErr: pkgerrors.New(pkgerrors.CodeValidation, "no file uploaded")}

	rec := httptest.NewRecorder()
	CreateInventory(svc, testMediaConfig(), nil)(rec, multipartCreateRequest(t, "Pakan", "1", uuid.New().String()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"VALIDATION_ERROR","message":"no file uploaded"}}`, rec.Body.String())
}
