package parallel

import "go.uber.org/zap"

// Option customises the backend
type Option func(*Backend)

// WithConfig sets backend configuration
func WithConfig(config Config) Option {
	return func(b *Backend) {
		b.config = config
	}
}

// WithStationFactory replaces the default inbox factory
func WithStationFactory(factory StationFactory) Option {
	return func(b *Backend) {
		b.factory = factory
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}
