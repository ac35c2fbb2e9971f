package service

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/lifecycle"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

var moldFields = map[string]string{
	"id":            "id",
	"name":          "name",
	"delivery_date": "delivery_date",
	"priority":      "priority",
	"status":        "status",
	"dimensions":    "dimensions",
	"customer_id":   "customer_id",
	"created_at":    "created_at",
}

// CreateMoldPayload opens a manufacturing order for a mold. The
// creating user is taken from the authenticated principal, not the
// payload.
type CreateMoldPayload struct {
	Name         string     `json:"name"`
	DeliveryDate time.Time  `json:"delivery_date"`
	Priority     string     `json:"priority"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	Dimensions   string     `json:"dimensions"`
	CustomerID   *uuid.UUID `json:"customer_id"`
}

func (p CreateMoldPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.DeliveryDate, validation.Required),
		validation.Field(&p.Priority, validation.Required, validation.By(validPriority)),
		validation.Field(&p.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&p.Status, validation.By(validMoldStatus)),
		validation.Field(&p.Dimensions, validation.Required, validation.Length(1, 100)),
	)
}

// UpdateMoldPayload is a partial update; nil fields keep their value.
type UpdateMoldPayload struct {
	Name         *string    `json:"name"`
	DeliveryDate *time.Time `json:"delivery_date"`
	Priority     *string    `json:"priority"`
	Quantity     *int       `json:"quantity"`
	Status       *string    `json:"status"`
	Dimensions   *string    `json:"dimensions"`
	CustomerID   *uuid.UUID `json:"customer_id"`
}

func (p UpdateMoldPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.Priority, validation.NilOrNotEmpty, validation.By(derefRule(validPriority))),
		validation.Field(&p.Quantity, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&p.Status, validation.NilOrNotEmpty, validation.By(derefRule(validMoldStatus))),
		validation.Field(&p.Dimensions, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// MoldService owns mold orders. Dimensions are unique among active
// molds; customer references are checked against active customers.
type MoldService struct {
	rec       *lifecycle.Reconciler[*model.Mold]
	customers *CustomerService
	users     *UserService
}

func NewMoldService(db *bun.DB, customers *CustomerService, users *UserService) *MoldService {
	repo := repository.New(repository.ModelHandlers[*model.Mold]{
		NewRecord: func() *model.Mold { return &model.Mold{} },
	}, moldFields)

	rec := lifecycle.New(db, repo, lifecycle.Handlers[*model.Mold]{
		NewRecord: func() *model.Mold { return &model.Mold{} },
		Merge: func(dst, src *model.Mold) {
			dst.Name = src.Name
			dst.DeliveryDate = src.DeliveryDate
			dst.Priority = src.Priority
			dst.Quantity = src.Quantity
			dst.Status = src.Status
			dst.Dimensions = src.Dimensions
			dst.CreatedByID = src.CreatedByID
			dst.CustomerID = src.CustomerID
		},
	}, []lifecycle.UniqueKey[*model.Mold]{
		{Fields: []string{"dimensions"}, Values: func(m *model.Mold) []any { return []any{m.Dimensions} }},
	})

	return &MoldService{rec: rec, customers: customers, users: users}
}

// Create opens a mold order stamped with the creating user.
func (s *MoldService) Create(ctx context.Context, payload CreateMoldPayload, createdBy uuid.UUID) (*model.Mold, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	if payload.CustomerID != nil {
		if _, err := referenced(ctx, "customer", *payload.CustomerID, s.customers.Get); err != nil {
			return nil, err
		}
	}

	status := model.MoldStatus(payload.Status)
	if payload.Status == "" {
		status = model.MoldStatusPending
	}

	mold := &model.Mold{
		Name:         strings.TrimSpace(payload.Name),
		DeliveryDate: payload.DeliveryDate,
		Priority:     model.Priority(payload.Priority),
		Quantity:     payload.Quantity,
		Status:       status,
		Dimensions:   strings.TrimSpace(payload.Dimensions),
		CustomerID:   payload.CustomerID,
	}
	if createdBy != uuid.Nil {
		mold.CreatedByID = &createdBy
	}

	return s.rec.Create(ctx, mold)
}

func (s *MoldService) Update(ctx context.Context, id uuid.UUID, payload UpdateMoldPayload) (*model.Mold, error) {
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
	if payload.DeliveryDate != nil {
		candidate.DeliveryDate = *payload.DeliveryDate
	}
	if payload.Priority != nil {
		candidate.Priority = model.Priority(*payload.Priority)
	}
	if payload.Quantity != nil {
		candidate.Quantity = *payload.Quantity
	}
	if payload.Status != nil {
		candidate.Status = model.MoldStatus(*payload.Status)
	}
	if payload.Dimensions != nil {
		candidate.Dimensions = strings.TrimSpace(*payload.Dimensions)
	}
	if payload.CustomerID != nil {
		if _, err := referenced(ctx, "customer", *payload.CustomerID, s.customers.Get); err != nil {
			return nil, err
		}
		candidate.CustomerID = payload.CustomerID
	}

	return s.rec.Update(ctx, id, candidate)
}

func (s *MoldService) Get(ctx context.Context, id uuid.UUID) (*model.Mold, error) {
	return s.rec.Get(ctx, id)
}

func (s *MoldService) List(ctx context.Context, req repository.PageRequest) ([]*model.Mold, int, error) {
	if req.OrderField == "" {
		req.OrderField = "delivery_date"
	}
	return s.rec.List(ctx, req)
}

func (s *MoldService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rec.Delete(ctx, id)
}

func (s *MoldService) Restore(ctx context.Context, id uuid.UUID) (*model.Mold, error) {
	return s.rec.Restore(ctx, id)
}

func validPriority(value any) error {
	if s, ok := value.(string); ok && model.Priority(s).IsValid() {
		return nil
	}
	return validation.NewError("validation_priority", "must be Low, Medium or High")
}

func validMoldStatus(value any) error {
	s, ok := value.(string)
	if ok && (s == "" || model.MoldStatus(s).IsValid()) {
		return nil
	}
	return validation.NewError("validation_mold_status", "must be Pending, In Progress, Completed or Shipped")
}

// derefRule adapts a string rule to a *string field.
func derefRule(rule func(any) error) func(any) error {
	return func(value any) error {
		if p, ok := value.(*string); ok {
			if p == nil {
				return nil
			}
			return rule(*p)
		}
		return rule(value)
	}
}
