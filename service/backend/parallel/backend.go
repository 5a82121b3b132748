package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/messaging"
	"github.com/viant/brigade/service/messaging/memory"
	"go.uber.org/zap"
)

// Backend runs one station goroutine per chef.
type Backend struct {
	config  Config
	factory StationFactory
	timing  backend.Timing
	notify  backend.Notify
	logger  *zap.SugaredLogger

	outbox   *memory.Queue[backend.Report]
	ctx      context.Context
	cancelFn context.CancelFunc

	mu         sync.Mutex
	generation int
	stations   map[int]*station
	stationWg  sync.WaitGroup
	closed     bool
}

// New creates a parallel backend and starts its report relay.
func New(notify backend.Notify, timing backend.Timing, options ...Option) *Backend {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Backend{
		config:   DefaultConfig(),
		timing:   timing,
		notify:   notify,
		logger:   zap.NewNop().Sugar(),
		ctx:      ctx,
		cancelFn: cancel,
		stations: make(map[int]*station),
	}
	for _, opt := range options {
		opt(b)
	}
	if b.factory == nil {
		b.factory = DefaultFactory(b.config)
	}
	b.outbox = memory.NewQueue[backend.Report](queueConfig(b.config))
	go b.relay()
	return b
}

func (b *Backend) Kind() backend.Kind { return backend.KindParallel }

// relay forwards station reports to notify
func (b *Backend) relay() {
	for {
		msg, err := b.outbox.Consume(b.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, messaging.ErrQueueClosed) {
				return
			}
			continue
		}
		if msg == nil {
			continue
		}
		_ = msg.Ack()
		if b.ctx.Err() != nil {
			return
		}
		b.notify(*msg.T())
	}
}

// Provision stops the previous generation's stations and builds one per chef.
// When any station cannot be built, the stations created so far are stopped
// and the error is returned.
func (b *Backend) Provision(ctx context.Context, generation int, chefIDs []int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("%w: backend shut down", ErrStationUnavailable)
	}
	b.stopStations()
	b.generation = generation

	stations := make(map[int]*station, len(chefIDs))
	for _, chefID := range chefIDs {
		inbox, err := b.factory(ctx, StationSpec{Generation: generation, ChefID: chefID})
		if err == nil && inbox == nil {
			err = fmt.Errorf("%w: chef %d has no inbox", ErrStationUnavailable, chefID)
		}
		if err != nil {
			for _, s := range stations {
				s.stop()
			}
			return fmt.Errorf("failed to provision station for chef %d: %w", chefID, err)
		}
		stationCtx, cancel := context.WithCancel(b.ctx)
		stations[chefID] = &station{
			generation: generation,
			chefID:     chefID,
			inbox:      inbox,
			outbox:     b.outbox,
			logger:     b.logger,
			ctx:        stationCtx,
			cancelFn:   cancel,
		}
	}
	b.stations = stations
	for _, s := range stations {
		b.stationWg.Add(1)
		go s.run(b.stationWg.Done)
	}
	b.logger.Debugw("stations provisioned", "generation", generation, "count", len(stations))
	return nil
}

func (b *Backend) stopStations() {
	for _, s := range b.stations {
		s.stop()
	}
	b.stations = make(map[int]*station)
}

// Start publishes a cook command on the chef's inbox. Dispatch runs on the
// backend's own context, so a cancelled caller never fails the start.
func (b *Backend) Start(_ context.Context, assignment backend.Assignment) (backend.Handle, error) {
	if assignment.Order == nil {
		return nil, fmt.Errorf("parallel backend: nil order")
	}
	b.mu.Lock()
	s, ok := b.stations[assignment.ChefID]
	generation := b.generation
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("%w: backend shut down", ErrStationUnavailable)
	}
	if !ok || generation != assignment.Generation {
		return nil, fmt.Errorf("%w: no station for chef %d in generation %d", ErrStationUnavailable, assignment.ChefID, assignment.Generation)
	}
	cmd := Command{
		Kind:     CommandCook,
		OrderID:  assignment.Order.ID,
		Order:    assignment.Order.Clone(),
		Duration: b.timing.Duration(len(assignment.Order.Items)),
	}
	if err := s.inbox.Publish(b.ctx, &cmd); err != nil {
		return nil, fmt.Errorf("failed to dispatch order %d to chef %d: %w", cmd.OrderID, assignment.ChefID, err)
	}
	return backend.NewHandle(nil), nil
}

// Cancel publishes a cancel command; stations not cooking orderID ignore it.
func (b *Backend) Cancel(chefID, orderID int) {
	b.mu.Lock()
	s, ok := b.stations[chefID]
	b.mu.Unlock()
	if !ok {
		return
	}
	cmd := Command{Kind: CommandCancel, OrderID: orderID}
	if err := s.inbox.Publish(s.ctx, &cmd); err != nil {
		b.logger.Debugw("cancel not delivered", "chef", chefID, "order", orderID, "error", err)
	}
}

// Stations returns the number of live stations
func (b *Backend) Stations() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.stations)
}

// Shutdown stops every station and the relay. It waits for stations but not
// for the relay, which may be blocked delivering a report.
func (b *Backend) Shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.stopStations()
	b.mu.Unlock()
	b.cancelFn()
	_ = b.outbox.Close()
	b.stationWg.Wait()
}

var _ backend.Backend = (*Backend)(nil)
