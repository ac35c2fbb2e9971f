package model

// Priority ranks how urgently a mold must be delivered.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// MoldStatus tracks a mold through the shop floor.
type MoldStatus string

const (
	MoldStatusPending    MoldStatus = "Pending"
	MoldStatusInProgress MoldStatus = "In Progress"
	MoldStatusCompleted  MoldStatus = "Completed"
	MoldStatusShipped    MoldStatus = "Shipped"
)

func (s MoldStatus) IsValid() bool {
	switch s {
	case MoldStatusPending, MoldStatusInProgress, MoldStatusCompleted, MoldStatusShipped:
		return true
	default:
		return false
	}
}

// PartStatus tracks the machining state of a single part.
type PartStatus string

const (
	PartStatusPending    PartStatus = "Pending"
	PartStatusInProgress PartStatus = "In Progress"
	PartStatusCompleted  PartStatus = "Completed"
)

func (s PartStatus) IsValid() bool {
	switch s {
	case PartStatusPending, PartStatusInProgress, PartStatusCompleted:
		return true
	default:
		return false
	}
}

// CamStatus tracks CAM programming approval for a part.
type CamStatus string

const (
	CamStatusPending  CamStatus = "Pending"
	CamStatusApproved CamStatus = "Approved"
)

func (s CamStatus) IsValid() bool {
	switch s {
	case CamStatusPending, CamStatusApproved:
		return true
	default:
		return false
	}
}

// OperationStatus tracks one item inside an operation.
type OperationStatus string

const (
	OperationStatusPending    OperationStatus = "Pending"
	OperationStatusInProgress OperationStatus = "In Progress"
	OperationStatusCompleted  OperationStatus = "Completed"
)

func (s OperationStatus) IsValid() bool {
	switch s {
	case OperationStatusPending, OperationStatusInProgress, OperationStatusCompleted:
		return true
	default:
		return false
	}
}

// OperationItemType discriminates what an operation item points at.
type OperationItemType string

const (
	OperationItemPart OperationItemType = "Part"
	OperationItemMold OperationItemType = "Mold"
)

func (t OperationItemType) IsValid() bool {
	switch t {
	case OperationItemPart, OperationItemMold:
		return true
	default:
		return false
	}
}
