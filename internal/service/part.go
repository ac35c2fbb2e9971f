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

var partFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"status":     "status",
	"cam_status": "cam_status",
	"mold_id":    "mold_id",
	"created_at": "created_at",
}

// CreatePartPayload adds a machined component to a mold order.
type CreatePartPayload struct {
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CamStatus string    `json:"cam_status"`
	MoldID    uuid.UUID `json:"mold_id"`
}

func (p CreatePartPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&p.Status, validation.By(validPartStatus)),
		validation.Field(&p.CamStatus, validation.By(validCamStatus)),
		validation.Field(&p.MoldID, validation.Required, validation.By(notNilUUID)),
	)
}

// UpdatePartPayload is a partial update; nil fields keep their value.
type UpdatePartPayload struct {
	Name      *string    `json:"name"`
	Quantity  *int       `json:"quantity"`
	Status    *string    `json:"status"`
	CamStatus *string    `json:"cam_status"`
	MoldID    *uuid.UUID `json:"mold_id"`
}

func (p UpdatePartPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.Quantity, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&p.Status, validation.NilOrNotEmpty, validation.By(derefRule(validPartStatus))),
		validation.Field(&p.CamStatus, validation.NilOrNotEmpty, validation.By(derefRule(validCamStatus))),
	)
}

// PartService owns mold parts. The (name, mold_id) pair is unique
// among active parts, so the same part name can recur across molds.
type PartService struct {
	rec   *lifecycle.Reconciler[*model.Part]
	molds *MoldService
}

func NewPartService(db *bun.DB, molds *MoldService) *PartService {
	repo := repository.New(repository.ModelHandlers[*model.Part]{
		NewRecord: func() *model.Part { return &model.Part{} },
	}, partFields)

	rec := lifecycle.New(db, repo, lifecycle.Handlers[*model.Part]{
		NewRecord: func() *model.Part { return &model.Part{} },
		Merge: func(dst, src *model.Part) {
			dst.Name = src.Name
			dst.Quantity = src.Quantity
			dst.Status = src.Status
			dst.CamStatus = src.CamStatus
			dst.MoldID = src.MoldID
		},
	}, []lifecycle.UniqueKey[*model.Part]{
		{
			Fields: []string{"name", "mold_id"},
			Values: func(p *model.Part) []any { return []any{p.Name, p.MoldID} },
		},
	})

	return &PartService{rec: rec, molds: molds}
}

func (s *PartService) Create(ctx context.Context, payload CreatePartPayload) (*model.Part, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	if _, err := referenced(ctx, "mold", payload.MoldID, s.molds.Get); err != nil {
		return nil, err
	}

	status := model.PartStatus(payload.Status)
	if payload.Status == "" {
		status = model.PartStatusPending
	}
	camStatus := model.CamStatus(payload.CamStatus)
	if payload.CamStatus == "" {
		camStatus = model.CamStatusPending
	}

	return s.rec.Create(ctx, &model.Part{
		Name:      strings.TrimSpace(payload.Name),
		Quantity:  payload.Quantity,
		Status:    status,
		CamStatus: camStatus,
		MoldID:    payload.MoldID,
	})
}

func (s *PartService) Update(ctx context.Context, id uuid.UUID, payload UpdatePartPayload) (*model.Part, error) {
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
	if payload.Quantity != nil {
		candidate.Quantity = *payload.Quantity
	}
	if payload.Status != nil {
		candidate.Status = model.PartStatus(*payload.Status)
	}
	if payload.CamStatus != nil {
		candidate.CamStatus = model.CamStatus(*payload.CamStatus)
	}
	if payload.MoldID != nil {
		if _, err := referenced(ctx, "mold", *payload.MoldID, s.molds.Get); err != nil {
			return nil, err
		}
		candidate.MoldID = *payload.MoldID
	}

	return s.rec.Update(ctx, id, candidate)
}

func (s *PartService) Get(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	return s.rec.Get(ctx, id)
}

func (s *PartService) List(ctx context.Context, req repository.PageRequest) ([]*model.Part, int, error) {
	if req.OrderField == "" {
		req.OrderField = "created_at"
	}
	return s.rec.List(ctx, req)
}

func (s *PartService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rec.Delete(ctx, id)
}

func (s *PartService) Restore(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	return s.rec.Restore(ctx, id)
}

func validPartStatus(value any) error {
	s, ok := value.(string)
	if ok && (s == "" || model.PartStatus(s).IsValid()) {
		return nil
	}
	return validation.NewError("validation_part_status", "must be Pending, In Progress or Completed")
}

func validCamStatus(value any) error {
	s, ok := value.(string)
	if ok && (s == "" || model.CamStatus(s).IsValid()) {
		return nil
	}
	return validation.NewError("validation_cam_status", "must be Pending or Approved")
}

func notNilUUID(value any) error {
	if id, ok := value.(uuid.UUID); ok && id != uuid.Nil {
		return nil
	}
	return validation.NewError("validation_uuid", "must be a valid id")
}
