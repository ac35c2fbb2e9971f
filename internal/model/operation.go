package model

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Operation is a machining operation scheduled on a machine. It has no
// business-unique key; items link it to the parts and molds it acts on.
type Operation struct {
	bun.BaseModel `bun:"table:operations,alias:opr"`

	ID        uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	OpType    string     `bun:"op_type,notnull" json:"op_type"`
	MachineID *uuid.UUID `bun:"machine_id,type:uuid,nullzero" json:"machine_id,omitempty"`

	Items []*OperationItem `bun:"rel:has-many,join:id=operation_id" json:"items,omitempty"`

	Lifecycle
}

func (o *Operation) GetID() uuid.UUID {
	return o.ID
}

func (o *Operation) SetID(id uuid.UUID) {
	o.ID = id
}

// OperationItem associates one part or mold with an operation.
type OperationItem struct {
	bun.BaseModel `bun:"table:operation_items,alias:opi"`

	ID          uuid.UUID         `bun:"id,pk,type:uuid" json:"id"`
	OperationID uuid.UUID         `bun:"operation_id,type:uuid,notnull" json:"operation_id"`
	ItemID      uuid.UUID         `bun:"item_id,type:uuid,notnull" json:"item_id"`
	ItemType    OperationItemType `bun:"item_type,notnull" json:"item_type"`
	Status      OperationStatus   `bun:"status,notnull" json:"status"`
}
