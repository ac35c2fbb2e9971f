package model

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Machine is a shop-floor machine operations run on. Name is unique
// among active machines.
type Machine struct {
	bun.BaseModel `bun:"table:machines,alias:mch"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	MachineType string    `bun:"machine_type,notnull" json:"machine_type"`

	Lifecycle
}

func (m *Machine) GetID() uuid.UUID {
	return m.ID
}

func (m *Machine) SetID(id uuid.UUID) {
	m.ID = id
}
