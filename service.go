package brigade

import (
	"context"
	"fmt"

	"time"

	"github.com/viant/brigade/internal/idgen"
	"github.com/viant/brigade/model"
	"github.com/viant/brigade/policy"
	"github.com/viant/brigade/service/approval"
	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/backend/parallel"
	"github.com/viant/brigade/service/event"
	"github.com/viant/brigade/service/scheduler"
	"go.uber.org/zap"
)

const (
	serviceName = "brigade"
	Version     = "0.1.0"
)

// Service wires configuration, logging and tracing around the scheduler.
type Service struct {
	config           *Config
	logger           *zap.SugaredLogger
	policy           *policy.Policy
	confirm          policy.ConfirmFunc
	approval         approval.Service
	approvalTimeout  time.Duration
	kitchenID        string
	listener         func(*event.Event[model.Snapshot])
	schedulerOptions []scheduler.Option
	tracingErr       error
	kitchen          *scheduler.Service
}

// New creates the service and opens the kitchen.
func New(ctx context.Context, options ...Option) (*Service, error) {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if s.tracingErr != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", s.tracingErr)
	}
	if s.config.Tracing.Enabled {
		if err := s.initTracing(); err != nil {
			return nil, err
		}
	}
	if s.logger == nil {
		logger, err := NewLogger(s.config.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
		s.logger = logger
	}
	s.kitchenID = idgen.Short()
	if s.approval != nil && s.confirm == nil {
		s.confirm = approval.Confirm(s.approval, s.kitchenID, s.approvalTimeout)
	}
	if s.policy == nil {
		s.policy = policy.FromConfig(&policy.Config{Mode: s.config.Kitchen.Confirm})
		s.policy.Ask = s.confirm
	}
	kind, _ := backend.ParseKind(s.config.Backend.Kind)

	schedulerOptions := []scheduler.Option{
		scheduler.WithKitchenID(s.kitchenID),
		scheduler.WithChefs(s.config.Kitchen.Chefs),
		scheduler.WithConfirmAbove(s.config.Kitchen.ConfirmAbove),
		scheduler.WithBackend(kind),
		scheduler.WithTiming(s.config.Cook),
		scheduler.WithLogger(s.logger),
		scheduler.WithPolicy(s.policy),
		scheduler.WithParallelOptions(
			parallel.WithConfig(parallel.Config{MaxStations: s.config.Backend.MaxStations, QueueBuffer: s.config.Backend.QueueBuffer}),
			parallel.WithLogger(s.logger),
		),
	}
	if s.listener != nil {
		schedulerOptions = append(schedulerOptions, scheduler.WithListener(s.listener))
	}
	schedulerOptions = append(schedulerOptions, s.schedulerOptions...)

	kitchen, err := scheduler.New(ctx, schedulerOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to open kitchen: %w", err)
	}
	s.kitchen = kitchen
	return s, nil
}

// Kitchen returns the scheduler
func (s *Service) Kitchen() *scheduler.Service {
	return s.kitchen
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Logger returns the service logger
func (s *Service) Logger() *zap.SugaredLogger {
	return s.logger
}

// Shutdown closes the kitchen and flushes the logger.
func (s *Service) Shutdown() {
	if s.kitchen != nil {
		s.kitchen.Shutdown()
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}
