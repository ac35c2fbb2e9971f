package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/lifecycle"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

var operationFields = map[string]string{
	"id":         "id",
	"op_type":    "op_type",
	"machine_id": "machine_id",
	"created_at": "created_at",
}

// OperationItemPayload links one part or mold into an operation.
type OperationItemPayload struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemType string    `json:"item_type"`
	Status   string    `json:"status"`
}

func (p OperationItemPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ItemID, validation.Required, validation.By(notNilUUID)),
		validation.Field(&p.ItemType, validation.Required, validation.By(validItemType)),
		validation.Field(&p.Status, validation.By(validOperationStatus)),
	)
}

// CreateOperationPayload schedules a machining operation. Operations
// carry no business-unique key; two identical ones may coexist.
type CreateOperationPayload struct {
	OpType    string                 `json:"op_type"`
	MachineID *uuid.UUID             `json:"machine_id"`
	Items     []OperationItemPayload `json:"items"`
}

func (p CreateOperationPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.OpType, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Items, validation.Required),
	)
}

// UpdateOperationPayload is a partial update; nil fields keep their
// value. A nil Items slice keeps the existing items, an empty one
// clears them.
type UpdateOperationPayload struct {
	OpType    *string                 `json:"op_type"`
	MachineID *uuid.UUID              `json:"machine_id"`
	Items     *[]OperationItemPayload `json:"items"`
}

func (p UpdateOperationPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.OpType, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// OperationService owns scheduled operations and their item
// associations. Item rows are replaced wholesale inside the same
// transaction as the operation write.
type OperationService struct {
	rec      *lifecycle.Reconciler[*model.Operation]
	machines *MachineService
	parts    *PartService
	molds    *MoldService
}

func NewOperationService(db *bun.DB, machines *MachineService, parts *PartService, molds *MoldService) *OperationService {
	repo := repository.New(repository.ModelHandlers[*model.Operation]{
		NewRecord: func() *model.Operation { return &model.Operation{} },
		Relations: []string{"Items"},
	}, operationFields)

	s := &OperationService{machines: machines, parts: parts, molds: molds}

	s.rec = lifecycle.New(db, repo, lifecycle.Handlers[*model.Operation]{
		NewRecord: func() *model.Operation { return &model.Operation{} },
		Merge: func(dst, src *model.Operation) {
			dst.OpType = src.OpType
			dst.MachineID = src.MachineID
			dst.Items = src.Items
		},
		OnSave: s.saveItems,
	}, nil)

	return s
}

func (s *OperationService) Create(ctx context.Context, payload CreateOperationPayload) (*model.Operation, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	if err := s.checkReferences(ctx, payload.MachineID, payload.Items); err != nil {
		return nil, err
	}

	return s.rec.Create(ctx, &model.Operation{
		OpType:    payload.OpType,
		MachineID: payload.MachineID,
		Items:     buildItems(payload.Items),
	})
}

func (s *OperationService) Update(ctx context.Context, id uuid.UUID, payload UpdateOperationPayload) (*model.Operation, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	current, err := s.rec.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var items []OperationItemPayload
	if payload.Items != nil {
		items = *payload.Items
	}
	if err := s.checkReferences(ctx, payload.MachineID, items); err != nil {
		return nil, err
	}

	candidate := s.rec.CandidateFrom(current)
	if payload.OpType != nil {
		candidate.OpType = *payload.OpType
	}
	if payload.MachineID != nil {
		candidate.MachineID = payload.MachineID
	}
	if payload.Items != nil {
		candidate.Items = buildItems(*payload.Items)
	} else {
		// nil signals "leave item rows untouched" to saveItems.
		candidate.Items = nil
	}

	return s.rec.Update(ctx, id, candidate)
}

func (s *OperationService) Get(ctx context.Context, id uuid.UUID) (*model.Operation, error) {
	return s.rec.Get(ctx, id)
}

func (s *OperationService) List(ctx context.Context, req repository.PageRequest) ([]*model.Operation, int, error) {
	if req.OrderField == "" {
		req.OrderField = "created_at"
	}
	return s.rec.List(ctx, req)
}

func (s *OperationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rec.Delete(ctx, id)
}

func (s *OperationService) Restore(ctx context.Context, id uuid.UUID) (*model.Operation, error) {
	return s.rec.Restore(ctx, id)
}

// saveItems replaces the operation's item rows when the record
// carries a non-nil slice. Runs inside the reconciler's transaction.
func (s *OperationService) saveItems(ctx context.Context, tx bun.IDB, op *model.Operation) error {
	if op.Items == nil {
		return nil
	}

	if _, err := tx.NewDelete().
		Model((*model.OperationItem)(nil)).
		Where("operation_id = ?", op.ID).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to clear operation items")
	}

	if len(op.Items) == 0 {
		return nil
	}

	for _, item := range op.Items {
		item.OperationID = op.ID
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
	}

	if _, err := tx.NewInsert().Model(&op.Items).Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to insert operation items")
	}
	return nil
}

// checkReferences verifies every foreign id the payload names:
// the machine, and each item's part or mold.
func (s *OperationService) checkReferences(ctx context.Context, machineID *uuid.UUID, items []OperationItemPayload) error {
	if machineID != nil {
		if _, err := referenced(ctx, "machine", *machineID, s.machines.Get); err != nil {
			return err
		}
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return invalidPayload(err)
		}
		switch model.OperationItemType(item.ItemType) {
		case model.OperationItemPart:
			if _, err := referenced(ctx, "part", item.ItemID, s.parts.Get); err != nil {
				return err
			}
		case model.OperationItemMold:
			if _, err := referenced(ctx, "mold", item.ItemID, s.molds.Get); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildItems(payloads []OperationItemPayload) []*model.OperationItem {
	items := make([]*model.OperationItem, 0, len(payloads))
	for _, p := range payloads {
		status := model.OperationStatus(p.Status)
		if p.Status == "" {
			status = model.OperationStatusPending
		}
		items = append(items, &model.OperationItem{
			ItemID:   p.ItemID,
			ItemType: model.OperationItemType(p.ItemType),
			Status:   status,
		})
	}
	return items
}

func validItemType(value any) error {
	if s, ok := value.(string); ok && model.OperationItemType(s).IsValid() {
		return nil
	}
	return validation.NewError("validation_item_type", "must be Part or Mold")
}

func validOperationStatus(value any) error {
	s, ok := value.(string)
	if ok && (s == "" || model.OperationStatus(s).IsValid()) {
		return nil
	}
	return validation.NewError("validation_operation_status", "must be Pending, In Progress or Completed")
}
