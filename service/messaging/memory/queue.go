package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/viant/brigade/service/messaging"
)

// ErrAlreadyProcessed is returned on a second Ack/Nack of the same message.
var ErrAlreadyProcessed = errors.New("message already processed")

// Config for memory queue implementation
type Config struct {
	QueueBuffer int
	// Unbounded lets Publish spill past QueueBuffer instead of blocking.
	Unbounded bool
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		QueueBuffer: 100,
	}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	id        string
	payload   T
	queue     *Queue[T]
	mu        sync.Mutex
	processed bool
	createdAt time.Time
}

// ID returns the message identifier
func (m *Message[T]) ID() string { return m.id }

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return ErrAlreadyProcessed
	}
	m.processed = true
	return nil
}

// Nack returns the payload to the tail of the queue for another delivery.
func (m *Message[T]) Nack(error) error {
	m.mu.Lock()
	if m.processed {
		m.mu.Unlock()
		return ErrAlreadyProcessed
	}
	m.processed = true
	m.mu.Unlock()
	retry := &Message[T]{id: m.id, payload: m.payload, queue: m.queue, createdAt: time.Now()}
	return m.queue.enqueue(context.Background(), retry)
}

// Queue implements an in-memory messaging.Queue backed by a buffered channel.
// Closing the queue never closes the channel itself, so late publishers get
// messaging.ErrQueueClosed instead of a panic.
type Queue[T any] struct {
	messages  chan *Message[T]
	done      chan struct{}
	closeOnce sync.Once
	config    Config
	pending   atomic.Int64

	spillMu  sync.Mutex
	spill    []*Message[T]
	draining bool
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		done:     make(chan struct{}),
		config:   config,
	}
}

// Publish adds a new item to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	msg := &Message[T]{
		id:        uuid.New().String(),
		payload:   *t,
		queue:     q,
		createdAt: time.Now(),
	}
	return q.enqueue(ctx, msg)
}

func (q *Queue[T]) enqueue(ctx context.Context, msg *Message[T]) error {
	select {
	case <-q.done:
		return messaging.ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	q.pending.Add(1)
	if q.config.Unbounded {
		q.push(msg)
		return nil
	}
	select {
	case q.messages <- msg:
		return nil
	case <-q.done:
		q.pending.Add(-1)
		return messaging.ErrQueueClosed
	case <-ctx.Done():
		q.pending.Add(-1)
		return ctx.Err()
	}
}

// push never blocks. Once anything has spilled, later messages queue behind
// it so delivery stays FIFO.
func (q *Queue[T]) push(msg *Message[T]) {
	q.spillMu.Lock()
	defer q.spillMu.Unlock()
	if len(q.spill) == 0 && !q.draining {
		select {
		case q.messages <- msg:
			return
		default:
		}
	}
	q.spill = append(q.spill, msg)
	if !q.draining {
		q.draining = true
		go q.drain()
	}
}

// drain moves spilled messages into the channel until the spill is empty or
// the queue is closed.
func (q *Queue[T]) drain() {
	for {
		q.spillMu.Lock()
		if len(q.spill) == 0 {
			q.draining = false
			q.spillMu.Unlock()
			return
		}
		msg := q.spill[0]
		q.spill[0] = nil
		q.spill = q.spill[1:]
		q.spillMu.Unlock()

		select {
		case q.messages <- msg:
		case <-q.done:
			return
		}
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case <-q.done:
		return nil, messaging.ErrQueueClosed
	default:
	}
	select {
	case msg := <-q.messages:
		q.pending.Add(-1)
		return msg, nil
	case <-q.done:
		return nil, messaging.ErrQueueClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close discards pending messages and unblocks every publisher and consumer.
func (q *Queue[T]) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}

// Closed reports whether Close was called
func (q *Queue[T]) Closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// Size returns the current number of messages in the queue, spilled ones included.
func (q *Queue[T]) Size() int {
	return int(q.pending.Load())
}

// ensure Queue implements messaging.Queue interface
var (
	_ messaging.Queue[any] = (*Queue[any])(nil)
	_ messaging.Closer     = (*Queue[any])(nil)
)
