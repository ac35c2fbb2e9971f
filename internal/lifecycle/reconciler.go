// Package lifecycle implements the soft-delete / restore /
// uniqueness-reconciliation protocol shared by every entity. The
// protocol is written once, generic over the entity type; per-entity
// services only supply handlers and their unique-key set.
package lifecycle

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/repository"
)

// UniqueKey is one business-unique field set. Composite keys list
// every field; Values extracts the candidate's values in the same
// order.
type UniqueKey[T model.Record] struct {
	Fields []string
	Values func(T) []any
}

// Handlers wire entity-specific behavior into the reconciler.
type Handlers[T model.Record] struct {
	NewRecord func() T
	// Merge copies the business fields of src onto dst. Lifecycle
	// columns and the id are never touched by Merge.
	Merge func(dst, src T)
	// OnSave, when set, runs inside the same transaction after the
	// row mutation. Used for dependent rows such as operation items.
	OnSave func(ctx context.Context, tx bun.IDB, record T) error
}

// Reconciler governs create, update, soft-delete and restore for one
// entity type against uniqueness constraints scoped to active
// records. Every mutation sequence runs inside a single transaction;
// the schema's partial unique indexes remain the authoritative
// enforcement and index violations surface as the same conflict kind
// the pre-check produces.
type Reconciler[T model.Record] struct {
	db       *bun.DB
	repo     *repository.Repository[T]
	handlers Handlers[T]
	keys     []UniqueKey[T]
	now      func() time.Time
}

// New builds a Reconciler for one entity type.
func New[T model.Record](db *bun.DB, repo *repository.Repository[T], handlers Handlers[T], keys []UniqueKey[T]) *Reconciler[T] {
	return &Reconciler[T]{
		db:       db,
		repo:     repo,
		handlers: handlers,
		keys:     keys,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (r *Reconciler[T]) WithClock(now func() time.Time) *Reconciler[T] {
	if now != nil {
		r.now = now
	}
	return r
}

// CandidateFrom clones the business fields and id of current into a
// fresh record, so callers can apply a partial payload without
// mutating the loaded record.
func (r *Reconciler[T]) CandidateFrom(current T) T {
	candidate := r.handlers.NewRecord()
	r.handlers.Merge(candidate, current)
	candidate.SetID(current.GetID())
	return candidate
}

// Create inserts the candidate as a new active record, unless an
// inactive record already holds one of its unique keys: then the
// payload is copied onto that record and it is restored instead,
// preserving the historical row identity. An active holder of any
// key fails with a data conflict.
func (r *Reconciler[T]) Create(ctx context.Context, candidate T) (T, error) {
	var out T
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dup, found, err := r.findInactiveDuplicate(ctx, tx, candidate, uuid.Nil)
		if err != nil {
			return err
		}

		now := r.now()
		if found {
			r.handlers.Merge(dup, candidate)
			dup.Restore()
			dup.Touch(now)
			if err := r.repo.Update(ctx, tx, dup); err != nil {
				return r.asConflict(err)
			}
			out = dup
		} else {
			if candidate.GetID() == uuid.Nil {
				candidate.SetID(uuid.New())
			}
			candidate.Restore()
			candidate.Stamp(now)
			if err := r.repo.Insert(ctx, tx, candidate); err != nil {
				return r.asConflict(err)
			}
			out = candidate
		}

		return r.save(ctx, tx, out)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Update applies the candidate's field values to the record with the
// given id. When a unique field now collides with an inactive record,
// the current record is soft-deleted and the inactive one is restored
// with the merged payload: the row identity transfers to the
// previously-deleted record rather than duplicating its history.
func (r *Reconciler[T]) Update(ctx context.Context, id uuid.UUID, candidate T) (T, error) {
	var out T
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		current, err := r.repo.FindByID(ctx, tx, id, false)
		if err != nil {
			return err
		}

		dup, found, err := r.findInactiveDuplicate(ctx, tx, candidate, id)
		if err != nil {
			return err
		}

		now := r.now()
		if found {
			current.Disable(now)
			current.Touch(now)
			if err := r.repo.Update(ctx, tx, current); err != nil {
				return err
			}

			r.handlers.Merge(dup, candidate)
			dup.Restore()
			dup.Touch(now)
			if err := r.repo.Update(ctx, tx, dup); err != nil {
				return r.asConflict(err)
			}
			out = dup
		} else {
			r.handlers.Merge(current, candidate)
			current.Touch(now)
			if err := r.repo.Update(ctx, tx, current); err != nil {
				return r.asConflict(err)
			}
			out = current
		}

		return r.save(ctx, tx, out)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Delete soft-deletes the record: the active flag flips off and
// disabled_at is stamped. The row is never removed.
func (r *Reconciler[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		current, err := r.repo.FindByID(ctx, tx, id, false)
		if err != nil {
			return err
		}

		now := r.now()
		current.Disable(now)
		current.Touch(now)
		return r.repo.Update(ctx, tx, current)
	})
}

// Restore flips an inactive record back to active. Callers are
// responsible for having resolved uniqueness conflicts first; the
// schema's partial index still rejects an unresolved one.
func (r *Reconciler[T]) Restore(ctx context.Context, id uuid.UUID) (T, error) {
	var out T
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := r.repo.FindByID(ctx, tx, id, true)
		if err != nil {
			return err
		}

		record.Restore()
		record.Touch(r.now())
		if err := r.repo.Update(ctx, tx, record); err != nil {
			return r.asConflict(err)
		}
		out = record
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Get loads one active record by id.
func (r *Reconciler[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return r.repo.FindByID(ctx, r.db, id, false)
}

// GetByField loads at most one record by a registered field name.
func (r *Reconciler[T]) GetByField(ctx context.Context, field string, value any, opts repository.FindOptions) (T, error) {
	return r.repo.FindByFields(ctx, r.db, []string{field}, []any{value}, opts)
}

// List returns one page plus the total count under the same active
// filter.
func (r *Reconciler[T]) List(ctx context.Context, req repository.PageRequest) ([]T, int, error) {
	return r.repo.Page(ctx, r.db, req)
}

// findInactiveDuplicate runs the conflict scan over every unique key
// of the candidate. An active holder fails immediately. Inactive
// holders are collected; two distinct inactive rows claimed by
// different keys is unresolvable and fails rather than silently
// picking one. Returns the single inactive duplicate when there is
// exactly one.
func (r *Reconciler[T]) findInactiveDuplicate(ctx context.Context, tx bun.IDB, candidate T, excludeID uuid.UUID) (T, bool, error) {
	var dup T
	var found bool

	for _, key := range r.keys {
		values := key.Values(candidate)
		match, err := r.repo.FindByFields(ctx, tx, key.Fields, values, repository.FindOptions{
			IncludeInactive: true,
			ExcludeID:       excludeID,
		})
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			var zero T
			return zero, false, err
		}

		if match.Active() {
			var zero T
			return zero, false, NewDataConflict(key.Fields, values)
		}

		if found && match.GetID() != dup.GetID() {
			var zero T
			return zero, false, NewDualInactiveConflict(dup.GetID(), match.GetID())
		}

		dup = match
		found = true
	}

	return dup, found, nil
}

func (r *Reconciler[T]) save(ctx context.Context, tx bun.IDB, record T) error {
	if r.handlers.OnSave == nil {
		return nil
	}
	return r.handlers.OnSave(ctx, tx, record)
}

// asConflict re-raises a storage-level unique violation as the same
// conflict kind the pre-check produces. The pre-check is only a
// better-error-message layer; under concurrent writes the partial
// index is what actually holds the invariant.
func (r *Reconciler[T]) asConflict(err error) error {
	if repository.IsUniqueViolation(err) {
		return errors.Wrap(err, errors.CategoryValidation, "a record with the same unique value already exists").
			WithTextCode(TextCodeDataConflict).
			WithCode(errors.CodeConflict)
	}
	return err
}
