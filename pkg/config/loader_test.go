package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crmkit/pkg/config"
)

type testConfig struct {
	Host    string        `env:"CONFIG_TEST_HOST" envDefault:"localhost"`
	Port    int           `env:"CONFIG_TEST_PORT" envDefault:"5432"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"10s"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"CONFIG_TEST_CACHED" envDefault:"initial"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 5432, cfg.Port)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("env overrides default", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_REQUIRED_SECRET", "s3cret")
		var cfg requiredConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "s3cret", cfg.Secret)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("cached after first load", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_CACHED", "first")
		var cfg cachedConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "first", cfg.Value)

		t.Setenv("CONFIG_TEST_CACHED", "second")
		var again cachedConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "first", again.Value)
	})
}
