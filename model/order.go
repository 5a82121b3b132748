package model

import (
	"strconv"
	"strings"
	"time"
)

// Order is a unit of kitchen work
type Order struct {
	ID          int        `json:"id"`
	Items       []string   `json:"items"`
	Status      Status     `json:"status"`
	Chef        int        `json:"chef,omitempty"` // assigned chef id, 0 unless cooking
	Attempts    int        `json:"attempts,omitempty"`
	SubmittedAt time.Time  `json:"submittedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}

// ParseItems splits comma separated text into trimmed, non-empty items.
func ParseItems(text string) []string {
	var items []string
	for _, fragment := range strings.Split(text, ",") {
		if item := strings.TrimSpace(fragment); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// NewOrder creates a waiting order
func NewOrder(id int, items []string, at time.Time) *Order {
	return &Order{
		ID:          id,
		Items:       append([]string(nil), items...),
		Status:      StatusWaiting,
		SubmittedAt: at,
	}
}

// Start marks the order as cooking on the supplied chef
func (o *Order) Start(chef int, at time.Time) {
	o.Status = StatusCooking
	o.Chef = chef
	o.Attempts++
	o.StartedAt = &at
}

// Requeue demotes a cooking order back to waiting
func (o *Order) Requeue() {
	o.Status = StatusWaiting
	o.Chef = 0
}

// Complete marks the order as completed
func (o *Order) Complete(at time.Time) {
	o.finish(StatusCompleted, at)
}

// Cancel marks the order as cancelled
func (o *Order) Cancel(at time.Time) {
	o.finish(StatusCancelled, at)
}

func (o *Order) finish(status Status, at time.Time) {
	o.Status = status
	o.Chef = 0
	o.FinishedAt = &at
}

// Clone returns a deep copy
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	ret := *o
	ret.Items = append([]string(nil), o.Items...)
	if o.StartedAt != nil {
		started := *o.StartedAt
		ret.StartedAt = &started
	}
	if o.FinishedAt != nil {
		finished := *o.FinishedAt
		ret.FinishedAt = &finished
	}
	return &ret
}

// Label renders "#id: a, b" the way kitchen tickets are printed
func (o *Order) Label() string {
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(strconv.Itoa(o.ID))
	b.WriteString(": ")
	b.WriteString(strings.Join(o.Items, ", "))
	return b.String()
}
