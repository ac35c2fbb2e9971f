// Package service implements the business operations behind every API
// route. Each entity gets a service that owns validation, referential
// checks and default values, and delegates lifecycle transitions to
// its reconciler.
package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/auth"
)

const TextCodeInvalidPayload = "invalid_payload"

// Services bundles every entity service over one database handle.
type Services struct {
	Users      *UserService
	Customers  *CustomerService
	Molds      *MoldService
	Parts      *PartService
	Materials  *MaterialService
	Machines   *MachineService
	Operations *OperationService
}

// New wires the full service graph. Cross-entity reference checks go
// through the sibling services rather than raw queries.
func New(db *bun.DB, hasher *auth.Hasher) *Services {
	s := &Services{
		Users:     NewUserService(db, hasher),
		Customers: NewCustomerService(db),
		Materials: NewMaterialService(db),
		Machines:  NewMachineService(db),
	}
	s.Molds = NewMoldService(db, s.Customers, s.Users)
	s.Parts = NewPartService(db, s.Molds)
	s.Operations = NewOperationService(db, s.Machines, s.Parts, s.Molds)
	return s
}

// invalidPayload converts an ozzo validation result into the API's
// bad-request error, carrying the per-field messages as metadata.
func invalidPayload(err error) error {
	rich := errors.Wrap(err, errors.CategoryValidation, "invalid payload").
		WithTextCode(TextCodeInvalidPayload).
		WithCode(errors.CodeBadRequest)

	if fieldErrs, ok := err.(validation.Errors); ok {
		meta := make(map[string]any, len(fieldErrs))
		for field, ferr := range fieldErrs {
			meta[field] = ferr.Error()
		}
		rich = rich.WithMetadata(meta)
	}
	return rich
}

// referenced loads a foreign record through its getter and re-labels a
// miss so the caller sees which reference was broken.
func referenced[T any](ctx context.Context, what string, id uuid.UUID, get func(context.Context, uuid.UUID) (T, error)) (T, error) {
	record, err := get(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			var zero T
			return zero, errors.New(what+" not found", errors.CategoryNotFound).
				WithCode(errors.CodeNotFound).
				WithTextCode("record_not_found").
				WithMetadata(map[string]any{"id": id.String()})
		}
		var zero T
		return zero, err
	}
	return record, nil
}
