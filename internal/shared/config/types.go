package config

import "time"

type BackendConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (b *BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type NetworkConfig struct {
	ProbeURL             string `mapstructure:"probe_url"`
	ProbeIntervalSeconds int    `mapstructure:"probe_interval_seconds"`
}

func (n *NetworkConfig) ProbeInterval() time.Duration {
	if n.ProbeIntervalSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(n.ProbeIntervalSeconds) * time.Second
}

type RetryConfig struct {
	MaxRetries  int `mapstructure:"max_retries"`
	BaseDelayMs int `mapstructure:"base_delay_ms"`
}

func (r *RetryConfig) BaseDelay() time.Duration {
	if r.BaseDelayMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(r.BaseDelayMs) * time.Millisecond
}
