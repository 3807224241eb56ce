package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Defaults(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	cfg := m.GetConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(5*1024*1024), cfg.Limits.MaxVcfSizeBytes)
	assert.Equal(t, 10.0, cfg.Limits.RequestsPerSecond)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
	assert.Equal(t, 30*time.Second, cfg.Explanation.Timeout)
	assert.Empty(t, cfg.Explanation.APIKey)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestManager_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Manager)
	}{
		{"zero port", func(m *Manager) { m.config.Server.Port = 0 }},
		{"port out of range", func(m *Manager) { m.config.Server.Port = 70000 }},
		{"zero vcf size", func(m *Manager) { m.config.Limits.MaxVcfSizeBytes = 0 }},
		{"zero request rate", func(m *Manager) { m.config.Limits.RequestsPerSecond = 0 }},
		{"zero cache size", func(m *Manager) { m.config.Cache.MaxEntries = 0 }},
		{"zero explanation timeout", func(m *Manager) { m.config.Explanation.Timeout = 0 }},
		{"bad log level", func(m *Manager) { m.config.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager()
			require.NoError(t, err)
			tt.mutate(m)
			assert.Error(t, m.Validate())
		})
	}
}
