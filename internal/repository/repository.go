// Package repository is the generic storage adapter every entity
// shares. Field access goes through a closed registry of allowed
// names instead of reflection: a name outside the registry fails with
// an invalid-field error before any query is built.
package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

const (
	TextCodeInvalidField = "invalid_field"
	TextCodeNotFound     = "record_not_found"
)

// ModelHandlers wire entity-specific behavior into the generic
// repository.
type ModelHandlers[T model.Record] struct {
	NewRecord func() T
	// Relations are bun relation names loaded with every read.
	Relations []string
}

// FindOptions scope a single-record lookup.
type FindOptions struct {
	// IncludeInactive widens the search to soft-deleted rows. When
	// set, active rows sort first so an active conflict always wins
	// over an inactive one.
	IncludeInactive bool
	// ExcludeID removes one record from consideration, so a field
	// collision against the record's own row is never a conflict.
	ExcludeID uuid.UUID
}

// PageRequest describes one page of a listing.
type PageRequest struct {
	Offset          int
	Limit           int
	OrderField      string
	Desc            bool
	IncludeInactive bool
}

// Repository is a field-registry storage adapter over bun for one
// entity type. It never flips lifecycle flags itself; services own
// those transitions.
type Repository[T model.Record] struct {
	handlers ModelHandlers[T]
	// fields maps exported field names to columns; it is the closed
	// registry backing get-by-field and order-by.
	fields map[string]string
}

// New builds a repository with its field registry.
func New[T model.Record](handlers ModelHandlers[T], fields map[string]string) *Repository[T] {
	return &Repository[T]{handlers: handlers, fields: fields}
}

// Column resolves an exported field name against the registry.
func (r *Repository[T]) Column(field string) (string, error) {
	column, ok := r.fields[field]
	if !ok {
		return "", NewInvalidField(field)
	}
	return column, nil
}

// FindByFields returns at most one record matching every given
// field/value pair. Missing records fail with a not-found error the
// caller can test with errors.IsNotFound.
func (r *Repository[T]) FindByFields(ctx context.Context, tx bun.IDB, fields []string, values []any, opts FindOptions) (T, error) {
	var zero T
	if len(fields) != len(values) {
		return zero, errors.New("field/value count mismatch", errors.CategoryInternal)
	}

	record := r.handlers.NewRecord()
	q := tx.NewSelect().Model(record)
	for _, rel := range r.handlers.Relations {
		q = q.Relation(rel)
	}

	for i, field := range fields {
		column, err := r.Column(field)
		if err != nil {
			return zero, err
		}
		q = q.Where(fmt.Sprintf("?TableAlias.%s = ?", column), values[i])
	}

	if !opts.IncludeInactive {
		q = q.Where("?TableAlias.is_active = ?", true)
	} else {
		q = q.OrderExpr("?TableAlias.is_active DESC")
	}

	if opts.ExcludeID != uuid.Nil {
		q = q.Where("?TableAlias.id <> ?", opts.ExcludeID)
	}

	if err := q.Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, NewRecordNotFound(fields, values)
		}
		return zero, errors.Wrap(err, errors.CategoryInternal, "failed to query record")
	}

	return record, nil
}

// FindByID loads one record by primary key.
func (r *Repository[T]) FindByID(ctx context.Context, tx bun.IDB, id uuid.UUID, includeInactive bool) (T, error) {
	return r.FindByFields(ctx, tx, []string{"id"}, []any{id}, FindOptions{IncludeInactive: includeInactive})
}

// Insert persists a new row.
func (r *Repository[T]) Insert(ctx context.Context, tx bun.IDB, record T) error {
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to insert record")
	}
	return nil
}

// Update persists every column of an existing row.
func (r *Repository[T]) Update(ctx context.Context, tx bun.IDB, record T) error {
	res, err := tx.NewUpdate().Model(record).WherePK().Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update record")
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return NewRecordNotFound([]string{"id"}, []any{record.GetID()})
	}
	return nil
}

// Page returns one page of records plus the total count under the
// same active filter, so pagination metadata stays consistent with
// the returned slice.
func (r *Repository[T]) Page(ctx context.Context, tx bun.IDB, req PageRequest) ([]T, int, error) {
	column, err := r.Column(req.OrderField)
	if err != nil {
		return nil, 0, err
	}

	var records []T
	q := tx.NewSelect().Model(&records)
	for _, rel := range r.handlers.Relations {
		q = q.Relation(rel)
	}

	if !req.IncludeInactive {
		q = q.Where("?TableAlias.is_active = ?", true)
	}

	direction := "ASC"
	if req.Desc {
		direction = "DESC"
	}
	q = q.OrderExpr(fmt.Sprintf("?TableAlias.%s %s", column, direction))

	total, err := q.Offset(req.Offset).Limit(req.Limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to list records")
	}

	return records, total, nil
}

// NewInvalidField is the error for a name outside the field registry.
func NewInvalidField(field string) error {
	return errors.New(fmt.Sprintf("field %q does not exist on this entity", field), errors.CategoryBadInput).
		WithTextCode(TextCodeInvalidField).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"field": field})
}

// NewRecordNotFound is the error for a lookup that matched nothing.
func NewRecordNotFound(fields []string, values []any) error {
	meta := make(map[string]any, len(fields))
	for i, field := range fields {
		meta[field] = values[i]
	}
	return errors.New("record not found", errors.CategoryNotFound).
		WithTextCode(TextCodeNotFound).
		WithCode(errors.CodeNotFound).
		WithMetadata(meta)
}

// IsUniqueViolation reports whether the driver rejected a write due
// to a unique constraint. The partial unique indexes in the schema
// are the authoritative uniqueness enforcement; this lets callers
// surface a race the pre-check missed as a data conflict.
func IsUniqueViolation(err error) bool {
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		msg := strings.ToLower(e.Error())
		if strings.Contains(msg, "unique constraint") ||
			strings.Contains(msg, "duplicate key value") {
			return true
		}
	}
	return false
}
