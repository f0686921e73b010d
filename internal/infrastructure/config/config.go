package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "guestgate/internal/shared/config"
)

type Config struct {
	Backend sharedConfig.BackendConfig `mapstructure:"backend"`
	Storage sharedConfig.StorageConfig `mapstructure:"storage"`
	Logger  sharedConfig.LoggerConfig  `mapstructure:"logger"`
	Network sharedConfig.NetworkConfig `mapstructure:"network"`
	Retry   sharedConfig.RetryConfig   `mapstructure:"retry"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("GUESTGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults and env vars carry the day
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Backend defaults
	viper.SetDefault("backend.base_url", "http://localhost:8080/api/v1")
	viper.SetDefault("backend.timeout_seconds", 30)

	// Storage defaults
	viper.SetDefault("storage.path", "guestgate.db")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Network defaults
	viper.SetDefault("network.probe_url", "")
	viper.SetDefault("network.probe_interval_seconds", 15)

	// Retry defaults
	viper.SetDefault("retry.max_retries", 2)
	viper.SetDefault("retry.base_delay_ms", 500)
}
