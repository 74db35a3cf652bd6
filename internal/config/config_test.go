package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerDefaults(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Store.SessionTTL)
	assert.Equal(t, time.Hour, cfg.Store.ResumeTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Store.ResultsTTL())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.True(t, cfg.RateLimit.Enabled)
}

func TestValidateDefaults(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)
	assert.NoError(t, m.Validate())
}

func TestValidateRejectsBadConfig(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func()
	}{
		{name: "bad port", mutate: func() { m.config.Server.Port = -1 }},
		{name: "bad backend", mutate: func() { m.config.Store.Backend = "carrier_pigeon" }},
		{name: "missing redis url", mutate: func() { m.config.Store.RedisURL = "" }},
		{name: "zero session ttl", mutate: func() { m.config.Store.SessionTTL = 0 }},
		{name: "bad log level", mutate: func() { m.config.Logging.Level = "verbose" }},
		{name: "zero rate", mutate: func() { m.config.RateLimit.RequestsPerSecond = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, m.Reload())
			tt.mutate()
			assert.Error(t, m.Validate())
		})
	}
}

func TestStoreConfigAccessors(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	assert.Same(t, &m.config.Store, m.GetStoreConfig())
	assert.Same(t, &m.config.Server, m.GetServerConfig())
}
