package backend

import (
	"sync"
	"sync/atomic"
)

// Handle references one cooking attempt. Release is idempotent.
type Handle interface {
	Release()
	Released() bool
}

type handle struct {
	once      sync.Once
	released  atomic.Bool
	onRelease func()
}

// NewHandle creates a handle running onRelease on the first Release.
func NewHandle(onRelease func()) Handle {
	return &handle{onRelease: onRelease}
}

func (h *handle) Release() {
	h.once.Do(func() {
		h.released.Store(true)
		if h.onRelease != nil {
			h.onRelease()
		}
	})
}

func (h *handle) Released() bool {
	return h.released.Load()
}
