package progress

import (
	"sync"
	"time"

	"github.com/viant/brigade/model"
)

// Delta represents an incremental counter change. The fields are signed and
// can be either positive (increment) or negative (decrement).
type Delta struct {
	Submitted int
	Waiting   int
	Cooking   int
	Completed int
	Cancelled int
	Requeued  int
}

// Progress keeps aggregated order counters for one kitchen. It is safe for
// concurrent use.
type Progress struct {
	KitchenID string
	StartedAt time.Time

	mu       sync.Mutex
	tally    model.Tally
	onChange func(model.Tally)
}

// New creates a tracker
func New(kitchenID string, startedAt time.Time) *Progress {
	return &Progress{KitchenID: kitchenID, StartedAt: startedAt}
}

// Update applies the supplied delta. The onChange callback, if any, receives
// a copy of the counters outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.tally.Submitted += d.Submitted
	p.tally.Waiting += d.Waiting
	p.tally.Cooking += d.Cooking
	p.tally.Completed += d.Completed
	p.tally.Cancelled += d.Cancelled
	p.tally.Requeued += d.Requeued
	snapshot := p.tally
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Tally returns a copy of the counters
func (p *Progress) Tally() model.Tally {
	if p == nil {
		return model.Tally{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tally
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it.
func (p *Progress) OnChange(cb func(model.Tally)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}
