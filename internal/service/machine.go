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

var machineFields = map[string]string{
	"id":           "id",
	"name":         "name",
	"machine_type": "machine_type",
	"created_at":   "created_at",
}

// CreateMachinePayload registers a shop-floor machine.
type CreateMachinePayload struct {
	Name        string `json:"name"`
	MachineType string `json:"machine_type"`
}

func (p CreateMachinePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.MachineType, validation.Required, validation.Length(1, 100)),
	)
}

// UpdateMachinePayload is a partial update; nil fields keep their
// value.
type UpdateMachinePayload struct {
	Name        *string `json:"name"`
	MachineType *string `json:"machine_type"`
}

func (p UpdateMachinePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.MachineType, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// MachineService owns machines. Name is unique among active machines.
type MachineService struct {
	rec *lifecycle.Reconciler[*model.Machine]
}

func NewMachineService(db *bun.DB) *MachineService {
	repo := repository.New(repository.ModelHandlers[*model.Machine]{
		NewRecord: func() *model.Machine { return &model.Machine{} },
	}, machineFields)

	rec := lifecycle.New(db, repo, lifecycle.Handlers[*model.Machine]{
		NewRecord: func() *model.Machine { return &model.Machine{} },
		Merge: func(dst, src *model.Machine) {
			dst.Name = src.Name
			dst.MachineType = src.MachineType
		},
	}, []lifecycle.UniqueKey[*model.Machine]{
		{Fields: []string{"name"}, Values: func(m *model.Machine) []any { return []any{m.Name} }},
	})

	return &MachineService{rec: rec}
}

func (s *MachineService) Create(ctx context.Context, payload CreateMachinePayload) (*model.Machine, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	return s.rec.Create(ctx, &model.Machine{
		Name:        strings.TrimSpace(payload.Name),
		MachineType: payload.MachineType,
	})
}

func (s *MachineService) Update(ctx context.Context, id uuid.UUID, payload UpdateMachinePayload) (*model.Machine, error) {
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
	if payload.MachineType != nil {
		candidate.MachineType = *payload.MachineType
	}

	return s.rec.Update(ctx, id, candidate)
}

func (s *MachineService) Get(ctx context.Context, id uuid.UUID) (*model.Machine, error) {
	return s.rec.Get(ctx, id)
}

func (s *MachineService) List(ctx context.Context, req repository.PageRequest) ([]*model.Machine, int, error) {
	if req.OrderField == "" {
		req.OrderField = "name"
	}
	return s.rec.List(ctx, req)
}

func (s *MachineService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rec.Delete(ctx, id)
}

func (s *MachineService) Restore(ctx context.Context, id uuid.UUID) (*model.Machine, error) {
	return s.rec.Restore(ctx, id)
}
