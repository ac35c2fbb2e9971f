package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/lifecycle"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

var customerFields = map[string]string{
	"id":           "id",
	"full_name":    "full_name",
	"country_code": "country_code",
	"country_name": "country_name",
	"created_at":   "created_at",
}

// CreateCustomerPayload registers a new customer. The country code is
// derived from the country name, never supplied by the caller.
type CreateCustomerPayload struct {
	FullName    string `json:"full_name"`
	CountryName string `json:"country_name"`
}

func (p CreateCustomerPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.CountryName, validation.Required),
	)
}

// UpdateCustomerPayload is a partial update; nil fields keep their
// value.
type UpdateCustomerPayload struct {
	FullName    *string `json:"full_name"`
	CountryName *string `json:"country_name"`
}

func (p UpdateCustomerPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FullName, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.CountryName, validation.NilOrNotEmpty),
	)
}

// CustomerService owns customer records. Active customers are unique
// per (full_name, country_name) pair.
type CustomerService struct {
	rec *lifecycle.Reconciler[*model.Customer]
}

func NewCustomerService(db *bun.DB) *CustomerService {
	repo := repository.New(repository.ModelHandlers[*model.Customer]{
		NewRecord: func() *model.Customer { return &model.Customer{} },
	}, customerFields)

	rec := lifecycle.New(db, repo, lifecycle.Handlers[*model.Customer]{
		NewRecord: func() *model.Customer { return &model.Customer{} },
		Merge: func(dst, src *model.Customer) {
			dst.FullName = src.FullName
			dst.CountryCode = src.CountryCode
			dst.CountryName = src.CountryName
		},
	}, []lifecycle.UniqueKey[*model.Customer]{
		{
			Fields: []string{"full_name", "country_name"},
			Values: func(c *model.Customer) []any { return []any{c.FullName, c.CountryName} },
		},
	})

	return &CustomerService{rec: rec}
}

func (s *CustomerService) Create(ctx context.Context, payload CreateCustomerPayload) (*model.Customer, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	name, code, err := resolveCountry(payload.CountryName)
	if err != nil {
		return nil, err
	}

	return s.rec.Create(ctx, &model.Customer{
		FullName:    strings.TrimSpace(payload.FullName),
		CountryCode: code,
		CountryName: name,
	})
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, payload UpdateCustomerPayload) (*model.Customer, error) {
	if err := payload.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	current, err := s.rec.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	candidate := s.rec.CandidateFrom(current)
	if payload.FullName != nil {
		candidate.FullName = strings.TrimSpace(*payload.FullName)
	}
	if payload.CountryName != nil {
		name, code, err := resolveCountry(*payload.CountryName)
		if err != nil {
			return nil, err
		}
		candidate.CountryName = name
		candidate.CountryCode = code
	}

	return s.rec.Update(ctx, id, candidate)
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return s.rec.Get(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, req repository.PageRequest) ([]*model.Customer, int, error) {
	if req.OrderField == "" {
		req.OrderField = "created_at"
	}
	return s.rec.List(ctx, req)
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rec.Delete(ctx, id)
}

func (s *CustomerService) Restore(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return s.rec.Restore(ctx, id)
}

// resolveCountry canonicalizes the country name and derives its code.
// Unknown countries fail with the list of supported names.
func resolveCountry(name string) (string, string, error) {
	trimmed := strings.TrimSpace(name)
	for _, country := range model.CountryNames() {
		if strings.EqualFold(country, trimmed) {
			code, _ := model.CountryCode(country)
			return country, code, nil
		}
	}
	return "", "", errors.New("unsupported country name", errors.CategoryValidation).
		WithCode(errors.CodeBadRequest).
		WithTextCode(TextCodeInvalidPayload).
		WithMetadata(map[string]any{"country_name": trimmed, "supported": model.CountryNames()})
}
