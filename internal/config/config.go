package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Manager loads and validates application configuration using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from file, environment and defaults
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/pharmaco-guidance-hub/")

	viper.SetEnvPrefix("PGX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and env vars suffice
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Request limits
	viper.SetDefault("limits.max_vcf_size_bytes", 5*1024*1024)
	viper.SetDefault("limits.requests_per_second", 10)
	viper.SetDefault("limits.request_burst", 20)

	// Explanation service defaults; an empty api_key selects the fallback
	viper.SetDefault("explanation.api_key", "")
	viper.SetDefault("explanation.base_url", "https://api.groq.com/openai/v1/chat/completions")
	viper.SetDefault("explanation.model", "llama-3.1-8b-instant")
	viper.SetDefault("explanation.timeout", "30s")
	viper.SetDefault("explanation.rate_limit", 5)
	viper.SetDefault("explanation.temperature", 0.3)
	viper.SetDefault("explanation.max_tokens", 800)

	// Result cache defaults
	viper.SetDefault("cache.max_entries", 1024)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Limits.MaxVcfSizeBytes <= 0 {
		return fmt.Errorf("invalid max VCF size: %d", config.Limits.MaxVcfSizeBytes)
	}
	if config.Limits.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid request rate: %v", config.Limits.RequestsPerSecond)
	}
	if config.Cache.MaxEntries <= 0 {
		return fmt.Errorf("invalid cache size: %d", config.Cache.MaxEntries)
	}
	if config.Explanation.Timeout <= 0 {
		return fmt.Errorf("invalid explanation timeout: %v", config.Explanation.Timeout)
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", config.Logging.Level)
	}

	return nil
}
