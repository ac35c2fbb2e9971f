package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by every entity that participates in the
// soft-delete lifecycle. The owning service is the only component
// allowed to flip the active flag.
type Record interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	Active() bool
	Restore()
	Disable(at time.Time)
	Stamp(at time.Time)
	Touch(at time.Time)
}

// Lifecycle carries the soft-delete and audit columns shared by every
// entity table. Rows are never hard-deleted: Disable flips the record
// inactive and stamps disabled_at, Restore reverses it.
type Lifecycle struct {
	IsActive   bool       `bun:"is_active,notnull" json:"is_active"`
	DisabledAt *time.Time `bun:"disabled_at,nullzero" json:"disabled_at,omitempty"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt  time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
}

// Active reports whether the record is live, i.e. subject to
// uniqueness constraints.
func (l *Lifecycle) Active() bool {
	return l.IsActive
}

// Restore flips the record back to active and clears disabled_at.
func (l *Lifecycle) Restore() {
	l.IsActive = true
	l.DisabledAt = nil
}

// Disable soft-deletes the record, stamping the given instant.
func (l *Lifecycle) Disable(at time.Time) {
	l.IsActive = false
	l.DisabledAt = &at
}

// Stamp sets the audit timestamps on first persist.
func (l *Lifecycle) Stamp(at time.Time) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = at
	}
	l.UpdatedAt = at
}

// Touch updates the modification timestamp.
func (l *Lifecycle) Touch(at time.Time) {
	l.UpdatedAt = at
}
