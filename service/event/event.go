package event

import (
	"time"

	"github.com/viant/brigade/internal/clock"
	"github.com/viant/brigade/internal/idgen"
)

// Event types emitted by the kitchen
const (
	TypeSubmitted = "order.submitted"
	TypeCompleted = "order.completed"
	TypeCancelled = "order.cancelled"
	TypeResized   = "pool.resized"
	TypeFallback  = "backend.fallback"
)

// Context describes what caused the event
type Context struct {
	KitchenID string `json:"kitchenID"`
	EventType string `json:"eventType"`
	OrderID   int    `json:"orderID,omitempty"`
	ChefID    int    `json:"chefID,omitempty"`
}

// Event wraps a payload with its causing context
type Event[T any] struct {
	ID        string                 `json:"id"`
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event stamped with a fresh id and the current time
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		ID:        idgen.New(),
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

// Type returns the event type or empty string
func (e *Event[T]) Type() string {
	if e == nil || e.Context == nil {
		return ""
	}
	return e.Context.EventType
}
