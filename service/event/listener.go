package event

import (
	"context"
	"errors"
	"sync"

	"github.com/viant/brigade/service/messaging"
)

// Listener delivers every published event to handler on its own goroutine.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
}

// NewListener creates a stopped listener
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the delivery loop; subsequent calls are no-ops.
func (l *Listener[T]) Start() {
	l.startOnce.Do(func() {
		l.wg.Add(1)
		go l.run()
	})
}

func (l *Listener[T]) run() {
	defer l.wg.Done()
	for {
		event, err := l.publisher.Consume(l.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, messaging.ErrQueueClosed) {
				return
			}
			continue
		}
		if event != nil {
			l.handler(event)
		}
	}
}

// Stop ends the delivery loop and waits for an in-progress handler to return.
// Events still queued are dropped.
func (l *Listener[T]) Stop() {
	l.cancel()
	l.wg.Wait()
}
