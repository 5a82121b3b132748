package brigade

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/brigade/internal/meta"
	"github.com/viant/brigade/policy"
	"github.com/viant/brigade/service/backend"
	"github.com/viant/brigade/service/backend/parallel"
	"github.com/viant/brigade/service/scheduler"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by ApplyEnv
const (
	EnvChefs        = "BRIGADE_CHEFS"
	EnvBackend      = "BRIGADE_BACKEND"
	EnvConfirmAbove = "BRIGADE_CONFIRM_ABOVE"
	EnvConfirm      = "BRIGADE_CONFIRM"
	EnvLogLevel     = "BRIGADE_LOG_LEVEL"
	EnvCookPerItem  = "BRIGADE_COOK_PER_ITEM"
	EnvCookJitter   = "BRIGADE_COOK_JITTER"
)

// Config is a serialisable representation of the kitchen configuration.
type Config struct {
	Kitchen KitchenConfig  `json:"kitchen" yaml:"kitchen"`
	Backend BackendConfig  `json:"backend" yaml:"backend"`
	Cook    backend.Timing `json:"cook" yaml:"cook"`
	Log     LogConfig      `json:"log" yaml:"log"`
	Tracing TracingConfig  `json:"tracing" yaml:"tracing"`
}

type KitchenConfig struct {
	Chefs        int    `json:"chefs" yaml:"chefs"`
	ConfirmAbove int    `json:"confirmAbove" yaml:"confirmAbove"`
	Confirm      string `json:"confirm" yaml:"confirm"` // ask, auto or deny
}

type BackendConfig struct {
	Kind        string `json:"kind" yaml:"kind"`
	MaxStations int    `json:"maxStations" yaml:"maxStations"`
	QueueBuffer int    `json:"queueBuffer" yaml:"queueBuffer"`
}

type LogConfig struct {
	Level    string `json:"level" yaml:"level"`
	Encoding string `json:"encoding" yaml:"encoding"` // console or json
}

type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Output  string `json:"output" yaml:"output"` // file path, stdout when empty
}

// DefaultConfig returns the default kitchen configuration.
func DefaultConfig() *Config {
	return &Config{
		Kitchen: KitchenConfig{
			Chefs:        scheduler.DefaultChefs,
			ConfirmAbove: scheduler.DefaultConfirmAbove,
			Confirm:      policy.ModeAsk,
		},
		Backend: BackendConfig{
			Kind:        string(backend.KindParallel),
			QueueBuffer: parallel.DefaultConfig().QueueBuffer,
		},
		Cook: backend.DefaultTiming(),
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Kitchen.Chefs < 1 {
		errs = append(errs, fmt.Errorf("kitchen.chefs must be >= 1, got %d", c.Kitchen.Chefs))
	}
	if c.Kitchen.ConfirmAbove < 0 {
		errs = append(errs, fmt.Errorf("kitchen.confirmAbove must be >= 0, got %d", c.Kitchen.ConfirmAbove))
	}
	if !policy.IsValidMode(c.Kitchen.Confirm) {
		errs = append(errs, fmt.Errorf("kitchen.confirm: unknown mode %q", c.Kitchen.Confirm))
	}
	if _, err := backend.ParseKind(c.Backend.Kind); err != nil {
		errs = append(errs, fmt.Errorf("backend.kind: %w", err))
	}
	if c.Backend.MaxStations < 0 {
		errs = append(errs, fmt.Errorf("backend.maxStations must be >= 0, got %d", c.Backend.MaxStations))
	}
	if c.Cook.PerItem < 0 || c.Cook.Jitter < 0 {
		errs = append(errs, fmt.Errorf("cook durations must not be negative"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Encoding {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.encoding: unknown encoding %q", c.Log.Encoding))
	}
	return errors.Join(errs...)
}

// LoadConfig downloads YAML from URL, expands ${env.KEY} references and
// decodes it over DefaultConfig.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %v: %w", URL, err)
	}
	cfg := DefaultConfig()
	if err = yaml.Unmarshal([]byte(meta.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return cfg, nil
}

// ApplyEnv loads the supplied .env files (missing ones are skipped) and
// overrides cfg with BRIGADE_* variables.
func ApplyEnv(cfg *Config, files ...string) error {
	var existing []string
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return fmt.Errorf("failed to load env files: %w", err)
		}
	}

	var errs []error
	if err := envInt(EnvChefs, &cfg.Kitchen.Chefs); err != nil {
		errs = append(errs, err)
	}
	if err := envInt(EnvConfirmAbove, &cfg.Kitchen.ConfirmAbove); err != nil {
		errs = append(errs, err)
	}
	if err := envDuration(EnvCookPerItem, &cfg.Cook.PerItem); err != nil {
		errs = append(errs, err)
	}
	if err := envDuration(EnvCookJitter, &cfg.Cook.Jitter); err != nil {
		errs = append(errs, err)
	}
	if value, ok := os.LookupEnv(EnvBackend); ok {
		kind, err := backend.ParseKind(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", EnvBackend, err))
		} else {
			cfg.Backend.Kind = string(kind)
		}
	}
	if value, ok := os.LookupEnv(EnvConfirm); ok {
		cfg.Kitchen.Confirm = value
	}
	if value, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Log.Level = value
	}
	return errors.Join(errs...)
}

func envInt(name string, target *int) error {
	value, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%v: invalid integer %q", name, value)
	}
	*target = n
	return nil
}

func envDuration(name string, target *time.Duration) error {
	value, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%v: invalid duration %q", name, value)
	}
	*target = d
	return nil
}
