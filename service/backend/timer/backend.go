// Package timer cooks each order on a single time.AfterFunc callback.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/brigade/service/backend"
	"go.uber.org/zap"
)

type entry struct {
	chefID int
	timer  *time.Timer
	handle backend.Handle
}

// Backend arms one timer per cooking order
type Backend struct {
	timing     backend.Timing
	notify     backend.Notify
	logger     *zap.SugaredLogger
	mu         sync.Mutex
	generation int
	timers     map[int]*entry
	closed     bool
}

// Option customises the timer backend
type Option func(b *Backend)

// WithLogger sets the logger used for timer diagnostics
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a timer backend
func New(notify backend.Notify, timing backend.Timing, options ...Option) *Backend {
	b := &Backend{
		timing: timing,
		notify: notify,
		logger: zap.NewNop().Sugar(),
		timers: make(map[int]*entry),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *Backend) Kind() backend.Kind { return backend.KindTimer }

// Provision records the generation; timers need no per-chef context.
func (b *Backend) Provision(_ context.Context, generation int, _ []int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("timer backend: shut down")
	}
	b.generation = generation
	return nil
}

// Start arms a timer for the assignment
func (b *Backend) Start(_ context.Context, assignment backend.Assignment) (backend.Handle, error) {
	if assignment.Order == nil {
		return nil, fmt.Errorf("timer backend: nil order")
	}
	orderID := assignment.Order.ID
	report := backend.Report{
		Kind:       backend.ReportDone,
		Generation: assignment.Generation,
		ChefID:     assignment.ChefID,
		OrderID:    orderID,
	}
	duration := b.timing.Duration(len(assignment.Order.Items))

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("timer backend: shut down")
	}
	if previous, ok := b.timers[orderID]; ok {
		previous.timer.Stop()
		b.logger.Debugw("timer replaced", "order", orderID, "chef", previous.chefID)
	}
	e := &entry{chefID: assignment.ChefID}
	e.handle = backend.NewHandle(func() { b.stop(orderID, e) })
	e.timer = time.AfterFunc(duration, func() {
		if e.handle.Released() {
			b.logger.Debugw("released timer fired", "order", orderID, "chef", assignment.ChefID)
			return
		}
		b.mu.Lock()
		if b.timers[orderID] == e {
			delete(b.timers, orderID)
		}
		b.mu.Unlock()
		b.notify(report)
	})
	b.timers[orderID] = e
	return e.handle, nil
}

func (b *Backend) stop(orderID int, e *entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e.timer != nil && e.timer.Stop() {
		b.logger.Debugw("timer stopped", "order", orderID, "chef", e.chefID)
	}
	if b.timers[orderID] == e {
		delete(b.timers, orderID)
	}
}

// Cancel stops the order's timer if it is still armed for chefID.
func (b *Backend) Cancel(chefID, orderID int) {
	b.mu.Lock()
	e, ok := b.timers[orderID]
	b.mu.Unlock()
	if !ok || e.chefID != chefID {
		b.logger.Debugw("cancel for unknown timer ignored", "order", orderID, "chef", chefID)
		return
	}
	e.handle.Release()
}

// Pending returns the number of armed timers
func (b *Backend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.timers)
}

// Shutdown stops every timer
func (b *Backend) Shutdown() {
	b.mu.Lock()
	b.closed = true
	entries := make([]*entry, 0, len(b.timers))
	for _, e := range b.timers {
		entries = append(entries, e)
	}
	b.mu.Unlock()
	for _, e := range entries {
		e.handle.Release()
	}
}

var _ backend.Backend = (*Backend)(nil)
