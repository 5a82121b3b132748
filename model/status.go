package model

// Status represents the lifecycle state of an order
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCooking   Status = "cooking"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// allowed lists every legal status change. cooking -> waiting only happens
// when the pool is resized and in-flight work is demoted.
var allowed = map[Status]map[Status]bool{
	StatusWaiting:   {StatusCooking: true, StatusCancelled: true},
	StatusCooking:   {StatusCompleted: true, StatusCancelled: true, StatusWaiting: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition checks if from->to is allowed.
func CanTransition(from, to Status) bool {
	next := allowed[from]
	return next != nil && next[to]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := allowed[s]
	return ok
}

// Source names the collection a cancellation request targets.
type Source string

const (
	SourceWaiting Source = "waiting"
	SourceCooking Source = "cooking"
)

// IsValid reports whether s is a known source.
func (s Source) IsValid() bool {
	return s == SourceWaiting || s == SourceCooking
}
