package approval

import (
	"time"
)

// ActionResize is the action name of a pool resize request
const ActionResize = "pool.resize"

// Request represents a request for approval
type Request struct {
	ID        string                 `json:"id"`
	KitchenID string                 `json:"kitchenId,omitempty"`
	Action    string                 `json:"action"`
	Count     int                    `json:"count"`
	CreatedAt time.Time              `json:"createdAt"`
	ExpiresAt *time.Time             `json:"expiresAt,omitempty"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
}

// Decision represents approval decision
type Decision struct {
	ID        string    `json:"id"` // same as request.ID
	Approved  bool      `json:"approved"`
	Reason    string    `json:"reason,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}
