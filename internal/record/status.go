package record

// Status marks a row as visible or logically deleted. Rows are never
// removed physically; every query filters on this column for every
// joined table independently, since deleting a parent does not touch
// its children.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)
