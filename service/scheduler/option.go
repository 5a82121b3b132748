package scheduler

import (
	"github.com/viant/brigade/model"
	"github.com/viant/brigade/policy"
	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/backend/parallel"
	"github.com/viant/brigade/service/dao"
	"github.com/viant/brigade/service/event"
	"go.uber.org/zap"
)

// Option customises the scheduler
type Option func(*Service)

// WithChefs sets the initial pool size
func WithChefs(count int) Option {
	return func(s *Service) {
		s.initialChefs = count
	}
}

// WithBackend selects the preferred execution backend
func WithBackend(kind backend.Kind) Option {
	return func(s *Service) {
		s.kind = kind
	}
}

// WithTiming sets cook timing
func WithTiming(timing backend.Timing) Option {
	return func(s *Service) {
		s.timing = timing
	}
}

// WithParallelOptions passes options to the parallel backend
func WithParallelOptions(options ...parallel.Option) Option {
	return func(s *Service) {
		s.parallelOptions = append(s.parallelOptions, options...)
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPolicy sets the resize confirmation policy
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithConfirmAbove sets the pool size above which resizes need confirmation
func WithConfirmAbove(count int) Option {
	return func(s *Service) {
		s.confirmAbove = count
	}
}

// WithListener registers a snapshot observer invoked after every mutation
func WithListener(listener func(*event.Event[model.Snapshot])) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// WithOrderStore replaces the in-memory order registry
func WithOrderStore(store dao.Service[int, model.Order]) Option {
	return func(s *Service) {
		s.orders = store
	}
}

// WithKitchenID sets the kitchen identifier used in snapshots and events
func WithKitchenID(id string) Option {
	return func(s *Service) {
		s.kitchenID = id
	}
}
