package kandang

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitraternak/kandang-backend/pkg/db/models"
	pkgerrors "github.com/mitraternak/kandang-backend/pkg/errors"
	"github.com/mitraternak/kandang-backend/pkg/pagination"
)

type kandangRepository interface {
	Create(ctx context.Context, k *models.Kandang) (*models.Kandang, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Kandang, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]models.Kandang, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Save(ctx context.Context, k *models.Kandang) error
}

// Service exposes housing-unit operations.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*models.Kandang, error)
	ListByOwner(ctx context.Context, input ListInput) (*ListResult, error)
	Detail(ctx context.Context, id uuid.UUID) (*models.Kandang, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo kandangRepository
}

// NewService constructs a kandang service backed by the provided repository.
func NewService(repo kandangRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("kandang repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*models.Kandang, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner identity missing")
	}
	nama := strings.TrimSpace(input.Nama)
	if nama == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nama is required")
	}

	k, err := s.repo.Create(ctx, &models.Kandang{
		Nama:       nama,
		Lokasi:     strings.TrimSpace(input.Lokasi),
		Longitude:  input.Longitude,
		Latitude:   input.Latitude,
		JumlahAyam: input.JumlahAyam,
		IDPemilik:  ownerID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create kandang")
	}
	return k, nil
}

func (s *service) ListByOwner(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.IDPemilik == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner identity missing")
	}

	params := pagination.Params{Page: input.Page, PageSize: input.PageSize}.Normalize()

	total, err := s.repo.CountByOwner(ctx, input.IDPemilik)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count kandang")
	}
	records, err := s.repo.ListByOwner(ctx, input.IDPemilik, params.Offset(), params.Limit())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list kandang")
	}

	return &ListResult{
		TotalCount: total,
		TotalPages: params.TotalPages(total),
		Page:       params.Page,
		PageSize:   params.PageSize,
		Records:    records,
	}, nil
}

func (s *service) Detail(ctx context.Context, id uuid.UUID) (*models.Kandang, error) {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return k, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) error {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}

	if input.Nama != nil && strings.TrimSpace(*input.Nama) != "" {
		k.Nama = strings.TrimSpace(*input.Nama)
	}
	if input.Lokasi != nil && strings.TrimSpace(*input.Lokasi) != "" {
		k.Lokasi = strings.TrimSpace(*input.Lokasi)
	}
	if input.Longitude != nil {
		k.Longitude = *input.Longitude
	}
	if input.Latitude != nil {
		k.Latitude = *input.Latitude
	}
	if input.JumlahAyam != nil {
		k.JumlahAyam = *input.JumlahAyam
	}

	if err := s.repo.Save(ctx, k); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update kandang")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}
	k.IsDeleted = true
	if err := s.repo.Save(ctx, k); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete kandang")
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "kandang not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query database")
}
