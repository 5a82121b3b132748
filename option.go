package brigade

import (
	"time"

	"github.com/viant/brigade/model"
	"github.com/viant/brigade/policy"
	"github.com/viant/brigade/service/approval"
	"github.com/viant/brigade/service/event"
	"github.com/viant/brigade/service/scheduler"
	"github.com/viant/brigade/tracing"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the Service
type Option func(s *Service)

// WithConfig sets the configuration; DefaultConfig is used otherwise
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger replaces the logger built from Config.Log
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPolicy replaces the confirmation policy built from Config.Kitchen.Confirm
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithConfirm sets the prompt used when the confirmation mode is ask
func WithConfirm(fn policy.ConfirmFunc) Option {
	return func(s *Service) {
		s.confirm = fn
	}
}

// WithApproval routes ask-mode confirmations through an approval service;
// a request left undecided for timeout is refused.
func WithApproval(svc approval.Service, timeout time.Duration) Option {
	return func(s *Service) {
		s.approval = svc
		s.approvalTimeout = timeout
	}
}

// WithListener registers a snapshot observer
func WithListener(listener func(*event.Event[model.Snapshot])) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// WithSchedulerOptions passes extra options to the scheduler; they are
// applied after the ones derived from Config.
func WithSchedulerOptions(options ...scheduler.Option) Option {
	return func(s *Service) {
		s.schedulerOptions = append(s.schedulerOptions, options...)
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile
// is empty the stdout exporter is used. It replaces any provider installed earlier.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracingErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
