// Package config defines configuration for the veilctl CLI.
// Config is loaded from a YAML file (default: configs/config.yaml) with
// sensitive fields overridable via VEIL_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level configuration. Maps directly to the YAML file.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Wallet  WalletConfig  `mapstructure:"wallet"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig selects the platform deployment. Host defaults to the public
// testnet when empty.
type APIConfig struct {
	Host    string        `mapstructure:"host"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WalletConfig holds the key used for session and order signing. Leave
// PrivateKey empty for read-only usage.
type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key"`
}

// CacheConfig sets where the session token is persisted between runs.
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config from a YAML file with env var overrides.
// Sensitive fields use env vars: VEIL_PRIVATE_KEY, VEIL_API_HOST.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("VEIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override sensitive fields from env
	if key := os.Getenv("VEIL_PRIVATE_KEY"); key != "" {
		cfg.Wallet.PrivateKey = key
	}
	if host := os.Getenv("VEIL_API_HOST"); host != "" {
		cfg.API.Host = host
	}

	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = "data"
	}

	return &cfg, nil
}

// Validate checks value ranges. An empty host is allowed (the client
// substitutes the default testnet deployment).
func (c *Config) Validate() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\"")
	}
	return nil
}
