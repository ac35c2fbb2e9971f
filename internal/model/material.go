package model

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Material is a stocked raw material. Name is unique among active
// materials.
type Material struct {
	bun.BaseModel `bun:"table:materials,alias:mat"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Description   string    `bun:"description,notnull" json:"description"`
	UnitOfMeasure string    `bun:"unit_of_measure" json:"unit_of_measure,omitempty"`
	StockQuantity float64   `bun:"stock_quantity,notnull" json:"stock_quantity"`

	Lifecycle
}

func (m *Material) GetID() uuid.UUID {
	return m.ID
}

func (m *Material) SetID(id uuid.UUID) {
	m.ID = id
}
