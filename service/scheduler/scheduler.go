package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/brigade/internal/clock"
	"github.com/viant/brigade/internal/idgen"
	"github.com/viant/brigade/model"
	"github.com/viant/brigade/policy"
	"github.com/viant/brigade/progress"
	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/backend/parallel"
	"github.com/viant/brigade/service/backend/timer"
	"github.com/viant/brigade/service/dao"
	"github.com/viant/brigade/service/dao/criteria"
	"github.com/viant/brigade/service/dao/order"
	"github.com/viant/brigade/service/event"
	"github.com/viant/brigade/service/messaging/memory"
	"github.com/viant/brigade/tracing"
	"go.uber.org/zap"
)

const (
	DefaultChefs        = 2
	DefaultConfirmAbove = 100
)

// Service schedules orders onto chefs
type Service struct {
	kitchenID       string
	initialChefs    int
	confirmAbove    int
	kind            backend.Kind
	timing          backend.Timing
	parallelOptions []parallel.Option
	logger          *zap.SugaredLogger
	policy          *policy.Policy
	listener        func(*event.Event[model.Snapshot])
	orders          dao.Service[int, model.Order]
	progress        *progress.Progress
	publisher       *event.Publisher[model.Snapshot]
	eventListener   *event.Listener[model.Snapshot]

	mu         sync.Mutex
	active     backend.Backend
	parallel   backend.Backend
	timer      backend.Backend
	fallback   bool
	closed     bool
	version    uint64
	nextID     int
	generation int
	chefs      []*model.Chef
	waiting    []*model.Order
	cooking    []*model.Order
	completed  []*model.Order
	cancelled  []*model.Order
	handles    map[int]backend.Handle
	spans      map[int]*tracing.Span
}

// New creates a scheduler with its first pool generation.
func New(ctx context.Context, options ...Option) (*Service, error) {
	s := &Service{
		initialChefs: DefaultChefs,
		confirmAbove: DefaultConfirmAbove,
		kind:         backend.KindParallel,
		timing:       backend.DefaultTiming(),
		logger:       zap.NewNop().Sugar(),
		policy:       policy.New(policy.ModeAsk, nil),
		handles:      make(map[int]backend.Handle),
		spans:        make(map[int]*tracing.Span),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.initialChefs < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPoolSize, s.initialChefs)
	}
	if s.kind != backend.KindParallel && s.kind != backend.KindTimer {
		return nil, fmt.Errorf("unsupported backend: %q", s.kind)
	}
	if s.kitchenID == "" {
		s.kitchenID = idgen.Short()
	}
	if s.orders == nil {
		s.orders = order.New()
	}
	s.progress = progress.New(s.kitchenID, clock.Now())
	if s.listener != nil {
		queue := memory.NewQueue[event.Event[model.Snapshot]](memory.Config{Unbounded: true})
		s.publisher = event.NewPublisher[model.Snapshot](queue)
		s.eventListener = event.NewListener[model.Snapshot](s.publisher, s.listener)
		s.eventListener.Start()
	}

	s.timer = timer.New(s.notifyFrom(backend.KindTimer), s.timing, timer.WithLogger(s.logger))
	s.active = s.timer
	if s.kind == backend.KindParallel {
		parallelOptions := append([]parallel.Option{parallel.WithLogger(s.logger)}, s.parallelOptions...)
		s.parallel = parallel.New(s.notifyFrom(backend.KindParallel), s.timing, parallelOptions...)
		s.active = s.parallel
	}

	s.mu.Lock()
	s.generation = 1
	s.chefs = model.NewChefs(s.initialChefs)
	if err := s.provision(ctx); err != nil {
		s.mu.Unlock()
		s.Shutdown()
		return nil, err
	}
	snapshot := s.mutated()
	s.mu.Unlock()

	s.logger.Infow("kitchen open", "kitchen", s.kitchenID, "chefs", s.initialChefs, "backend", s.Backend())
	s.publish(event.TypeResized, snapshot, 0, 0)
	return s, nil
}

// notifyFrom tags reports with the backend that produced them so reports
// from an abandoned backend are ignored.
func (s *Service) notifyFrom(kind backend.Kind) backend.Notify {
	return func(report backend.Report) {
		s.report(kind, report)
	}
}

// Chefs returns the current pool size
func (s *Service) Chefs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chefs)
}

// Backend returns the active backend kind
func (s *Service) Backend() backend.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Kind()
}

// KitchenID returns the kitchen identifier
func (s *Service) KitchenID() string {
	return s.kitchenID
}

// Order loads a copy of an admitted order.
func (s *Service) Order(ctx context.Context, id int) (*model.Order, error) {
	ret, err := s.orders.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return ret, nil
}

// Orders returns copies of admitted orders sorted by id, narrowed to the
// given statuses when any are supplied.
func (s *Service) Orders(ctx context.Context, statuses ...model.Status) ([]*model.Order, error) {
	var parameters []*dao.Parameter
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, status := range statuses {
			values[i] = string(status)
		}
		parameters = append(parameters, dao.NewParameter(criteria.StatusParameter, values...))
	}
	return s.orders.List(ctx, parameters...)
}

// Shutdown releases every handle and stops both backends. Later calls are no-ops.
func (s *Service) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, handle := range s.handles {
		handle.Release()
		delete(s.handles, id)
	}
	for id, span := range s.spans {
		tracing.EndSpan(span, ErrClosed)
		delete(s.spans, id)
	}
	if s.parallel != nil {
		s.parallel.Shutdown()
	}
	s.timer.Shutdown()
	s.mu.Unlock()

	if s.eventListener != nil {
		s.eventListener.Stop()
		_ = s.publisher.Close()
	}
	s.logger.Infow("kitchen closed", "kitchen", s.kitchenID)
}

func (s *Service) save(ctx context.Context, o *model.Order) {
	if err := s.orders.Save(ctx, o); err != nil {
		s.logger.Errorw("failed to save order", "order", o.ID, "error", err)
	}
}
