package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := NewConfigLoader("", "FIXSIM_TEST_UNUSED").LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9878", cfg.Server.ListenAddr)
	assert.Equal(t, 4, cfg.Server.WorkerThreads)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Benchmark.Concurrency)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("FIXSIM_SERVER_WORKER_THREADS", "16")
	cfg, err := NewConfigLoader("", "FIXSIM").LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Server.WorkerThreads)
}

func TestValidateConfigRejectsNonPositiveWorkers(t *testing.T) {
	cfg := &Config{
		Server: &ServerConfig{WorkerThreads: 0},
		Log:    &LogConfig{Output: "stdout"},
	}
	cl := NewConfigLoader("", "FIXSIM")
	err := cl.validateConfig(cfg)
	assert.Error(t, err)
}
