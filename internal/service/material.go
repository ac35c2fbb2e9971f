package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/lifecycle"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

var materialFields = map[string]string{
	"id":              "id",
	"name":            "name",
	"unit_of_measure": "unit_of_measure",
	"created_at":      "created_at",
}

// CreateMaterialPayload registers a stocked raw material.
type CreateMaterialPayload struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	StockQuantity float64 `json:"stock_quantity"`
}

func (p CreateMaterialPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.StockQuantity, validation.Min(0.0)),
	)
}

// UpdateMaterialPayload is a partial update; nil fields keep their
// value.
type UpdateMaterialPayload struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	UnitOfMeasure *string  `json:"unit_of_measure"`
	StockQuantity *float64 `json:"stock_quantity"`
}

func (p UpdateMaterialPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.NilOrNotEmpty),
		validation.Field(&p.StockQuantity, validation.Min(0.0)),
	)
}

// MaterialService owns raw materials. Name is unique among active
// materials.
type MaterialService struct {
	rec *lifecycle.Reconciler[*model.Material]
}

func NewMaterialService(db *bun.DB) *MaterialService {
	repo := repository.New(repository.ModelHandlers[*model.Material]{
		NewRecord: func() *model.Material { return &model.Material{} },
	}, materialFields)

	rec := lifecycle.New(db, repo, lifecycle.Handlers[*model.Material]{
		NewRecord: func() *model.Material { return &model.Material{} },
		Merge: func(dst, src *model.Material) {
			dst.Name = src.Name
			dst.Description = src.Description
			dst.UnitOfMeasure = src.UnitOfMeasure
			dst.StockQuantity = src.StockQuantity
		},
	}, []lifecycle.UniqueKey[*model.Material]{
		{Fields: []string{"name"}, Values: func(m *model.Material) []any { return []any{m.Name} }},
	})

	return &MaterialService{rec: rec}
}

func (s *MaterialService) Create(ctx context.Context, payload CreateMaterialPayload) (*model.Material, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	return s.rec.Create(ctx, &model.Material{
		Name:          strings.TrimSpace(payload.Name),
		Description:   payload.Description,
		UnitOfMeasure: payload.UnitOfMeasure,
		StockQuantity: payload.StockQuantity,
	})
}

func (s *MaterialService) Update(ctx context.Context, id uuid.UUID, payload UpdateMaterialPayload) (*model.Material, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	current, err := s.rec.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	candidate := s.rec.CandidateFrom(current)
	if payload.Name != nil {
		candidate.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Description != nil {
		candidate.Description = *payload.Description
	}
	if payload.UnitOfMeasure != nil {
		candidate.UnitOfMeasure = *payload.UnitOfMeasure
	}
	if payload.StockQuantity != nil {
		candidate.StockQuantity = *payload.StockQuantity
	}

	return s.rec.Update(ctx, id, candidate)
}

func (s *MaterialService) Get(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	return s.rec.Get(ctx, id)
}

func (s *MaterialService) List(ctx context.Context, req repository.PageRequest) ([]*model.Material, int, error) {
	if req.OrderField == "" {
		req.OrderField = "name"
	}
	return s.rec.List(ctx, req)
}

func (s *MaterialService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rec.Delete(ctx, id)
}

func (s *MaterialService) Restore(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	return s.rec.Restore(ctx, id)
}
