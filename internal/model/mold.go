package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Mold is a manufacturing order for one mold. Dimensions are unique
// among active molds. When a referenced user or customer is disabled
// the mold keeps the dangling reference; the reverse never cascades.
type Mold struct {
	bun.BaseModel `bun:"table:molds,alias:mld"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Name         string     `bun:"name,notnull" json:"name"`
	DeliveryDate time.Time  `bun:"delivery_date,notnull" json:"delivery_date"`
	Priority     Priority   `bun:"priority,notnull" json:"priority"`
	Quantity     int        `bun:"quantity,notnull" json:"quantity"`
	Status       MoldStatus `bun:"status,notnull" json:"status"`
	// Length x width x height, e.g. '200x150x50 mm'
	Dimensions  string     `bun:"dimensions,notnull" json:"dimensions"`
	CreatedByID *uuid.UUID `bun:"created_by_id,type:uuid,nullzero" json:"created_by_id,omitempty"`
	CustomerID  *uuid.UUID `bun:"customer_id,type:uuid,nullzero" json:"customer_id,omitempty"`

	Lifecycle
}

func (m *Mold) GetID() uuid.UUID {
	return m.ID
}

func (m *Mold) SetID(id uuid.UUID) {
	m.ID = id
}
