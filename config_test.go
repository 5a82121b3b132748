package brigade

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/brigade/service/backend"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(c *Config)
		hasErr      bool
	}{
		{description: "defaults", mutate: func(c *Config) {}},
		{description: "no chefs", mutate: func(c *Config) { c.Kitchen.Chefs = 0 }, hasErr: true},
		{description: "unknown backend", mutate: func(c *Config) { c.Backend.Kind = "threads" }, hasErr: true},
		{description: "unknown confirm mode", mutate: func(c *Config) { c.Kitchen.Confirm = "maybe" }, hasErr: true},
		{description: "negative jitter", mutate: func(c *Config) { c.Cook.Jitter = -time.Second }, hasErr: true},
		{description: "unknown log level", mutate: func(c *Config) { c.Log.Level = "loud" }, hasErr: true},
		{description: "unknown encoding", mutate: func(c *Config) { c.Log.Encoding = "xml" }, hasErr: true},
		{description: "timer backend", mutate: func(c *Config) { c.Backend.Kind = "timer" }},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cfg := DefaultConfig()
			testCase.mutate(cfg)
			err := cfg.Validate()
			if testCase.hasErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.Kitchen.Chefs)
	assert.Equal(t, 100, cfg.Kitchen.ConfirmAbove)
	assert.Equal(t, "ask", cfg.Kitchen.Confirm)
	assert.Equal(t, "parallel", cfg.Backend.Kind)
	assert.Equal(t, 3*time.Second, cfg.Cook.PerItem)
	assert.Equal(t, 2*time.Second, cfg.Cook.Jitter)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("BRIGADE_TEST_CHEFS", "5")
	location := filepath.Join(t.TempDir(), "brigade.yaml")
	require.NoError(t, os.WriteFile(location, []byte(`
kitchen:
  chefs: ${env.BRIGADE_TEST_CHEFS}
  confirm: auto
backend:
  kind: timer
cook:
  perItem: 250ms
log:
  level: debug
`), 0o644))

	cfg, err := LoadConfig(context.Background(), "file://"+location)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Kitchen.Chefs)
	assert.Equal(t, "auto", cfg.Kitchen.Confirm)
	assert.Equal(t, 100, cfg.Kitchen.ConfirmAbove, "unset keys keep defaults")
	assert.Equal(t, string(backend.KindTimer), cfg.Backend.Kind)
	assert.Equal(t, 250*time.Millisecond, cfg.Cook.PerItem)
	assert.Equal(t, 2*time.Second, cfg.Cook.Jitter)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(context.Background(), "file://"+filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("kitchen:\n  chefs: 0\n"), 0o644))
	_, err = LoadConfig(context.Background(), "file://"+invalid)
	assert.ErrorContains(t, err, "kitchen.chefs")

	malformed := filepath.Join(dir, "malformed.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("kitchen: [\n"), 0o644))
	_, err = LoadConfig(context.Background(), "file://"+malformed)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Run("variables override config", func(t *testing.T) {
		t.Setenv(EnvChefs, "7")
		t.Setenv(EnvBackend, "TIMER")
		t.Setenv(EnvConfirmAbove, "10")
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvCookPerItem, "10ms")
		t.Setenv(EnvCookJitter, "0s")
		cfg := DefaultConfig()
		require.NoError(t, ApplyEnv(cfg))
		assert.Equal(t, 7, cfg.Kitchen.Chefs)
		assert.Equal(t, "timer", cfg.Backend.Kind)
		assert.Equal(t, 10, cfg.Kitchen.ConfirmAbove)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, backend.Timing{PerItem: 10 * time.Millisecond}, cfg.Cook)
	})

	t.Run("dotenv file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(file, []byte("BRIGADE_CONFIRM=deny\n"), 0o644))
		t.Cleanup(func() { _ = os.Unsetenv(EnvConfirm) })
		cfg := DefaultConfig()
		require.NoError(t, ApplyEnv(cfg, file, filepath.Join(t.TempDir(), "absent.env")))
		assert.Equal(t, "deny", cfg.Kitchen.Confirm)
	})

	t.Run("malformed value names the variable", func(t *testing.T) {
		t.Setenv(EnvChefs, "many")
		t.Setenv(EnvCookJitter, "soon")
		err := ApplyEnv(DefaultConfig())
		assert.ErrorContains(t, err, EnvChefs)
		assert.ErrorContains(t, err, EnvCookJitter)
	})
}
