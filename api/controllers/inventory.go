package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mitraternak/kandang-backend/api/middleware"
	"github.com/mitraternak/kandang-backend/api/responses"
	"github.com/mitraternak/kandang-backend/api/validators"
	inventorysvc "github.com/mitraternak/kandang-backend/internal/inventory"
	"github.com/mitraternak/kandang-backend/pkg/config"
	pkgerrors "github.com/mitraternak/kandang-backend/pkg/errors"
	"github.com/mitraternak/kandang-backend/pkg/logger"
	"github.com/mitraternak/kandang-backend/pkg/pagination"
)

const imageFormField = "image"

// CreateInventory handles the multipart create request.
func CreateInventory(svc inventorysvc.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := validators.ParseMultipartForm(r, imageFormField, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stock, err := validators.FormInt(r, "stock", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		idKandang, err := parseFormUUID(r, "idKandang")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventorysvc.CreateInput{
			Name:      validators.FormValue(r, "name"),
			Stock:     stock,
			Jenis:     validators.FormValue(r, "jenis"),
			IDKandang: idKandang,
			Files:     toServiceFiles(files),
		}

		if err := svc.Create(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "inventory created successfully", nil)
	}
}

// ListInventoryByKandang handles the paginated per-kandang listing.
func ListInventoryByKandang(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kandangID, err := parsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListByKandang(r.Context(), inventorysvc.ListInput{
			IDKandang: kandangID,
			Name:      strings.TrimSpace(r.URL.Query().Get("name")),
			Jenis:     strings.TrimSpace(r.URL.Query().Get("jenis")),
			Page:      page,
			PageSize:  pageSize,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "inventory retrieved successfully", result)
	}
}

// InventoryDetail returns one record with its images.
func InventoryDetail(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inv, err := svc.Detail(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "inventory retrieved successfully", inv)
	}
}

// InventoryHistory returns the audit trail for one record, oldest first.
func InventoryHistory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logs, err := svc.History(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "inventory logs retrieved successfully", logs)
	}
}

// UpdateInventory handles the multipart update request, including image
// deletions via the deletedImagesId form field.
func UpdateInventory(svc inventorysvc.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		files, err := validators.ParseMultipartForm(r, imageFormField, media)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventorysvc.UpdateInput{Files: toServiceFiles(files)}

		if name := validators.FormValue(r, "name"); name != "" {
			input.Name = &name
		}
		if raw := validators.FormValue(r, "stock"); raw != "" {
			stock, err := validators.FormInt(r, "stock", 0)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Stock = &stock
		}
		if jenis := validators.FormValue(r, "jenis"); jenis != "" {
			input.Jenis = &jenis
		}
		if raw := validators.FormValue(r, "idKandang"); raw != "" {
			kandangID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid idKandang"))
				return
			}
			input.IDKandang = &kandangID
		}
		input.DeletedImageIDs = parseImageIDList(validators.FormValue(r, "deletedImagesId"))

		if err := svc.Update(r.Context(), id, actorID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "inventory updated successfully", nil)
	}
}

// DeleteInventory soft-deletes one record.
func DeleteInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id, actorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "inventory deleted successfully", nil)
	}
}

func toServiceFiles(files []validators.UploadedFile) []inventorysvc.File {
	out := make([]inventorysvc.File, 0, len(files))
	for _, f := range files {
		out = append(out, inventorysvc.File{
			Name:        f.Name,
			ContentType: f.ContentType,
			Data:        f.Data,
		})
	}
	return out
}

// parseImageIDList splits a comma-separated id list; entries that are not
// valid uuids are dropped, matching the tolerant delete semantics.
func parseImageIDList(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func actorFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}

func parsePathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key)
	}
	return id, nil
}

func parseFormUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := validators.FormValue(r, key)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, key+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key)
	}
	return id, nil
}
