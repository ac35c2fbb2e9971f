package model

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Part is a machined component of a mold. The (name, mold_id) pair is
// unique among active parts.
type Part struct {
	bun.BaseModel `bun:"table:parts,alias:prt"`

	ID        uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	Quantity  int        `bun:"quantity,notnull" json:"quantity"`
	Status    PartStatus `bun:"status,notnull" json:"status"`
	CamStatus CamStatus  `bun:"cam_status,notnull" json:"cam_status"`
	MoldID    uuid.UUID  `bun:"mold_id,type:uuid,notnull" json:"mold_id"`

	Lifecycle
}

func (p *Part) GetID() uuid.UUID {
	return p.ID
}

func (p *Part) SetID(id uuid.UUID) {
	p.ID = id
}
