// Package config loads and validates miner configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Providers accepted by llm.provider.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Acquire AcquireConfig `mapstructure:"acquire"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LedgerConfig locates the output ledger file.
type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

// AcquireConfig governs content acquisition.
type AcquireConfig struct {
	UserAgent       string `mapstructure:"user_agent"`
	HeadlessEnabled bool   `mapstructure:"headless_enabled"`
	NavTimeoutSec   int    `mapstructure:"nav_timeout_seconds"`
	SettleMs        int    `mapstructure:"settle_ms"`
	HTTPTimeoutSec  int    `mapstructure:"http_timeout_seconds"`
}

// LLMConfig selects and configures the extraction backend.
type LLMConfig struct {
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api_key"`
	Endpoint   string `mapstructure:"endpoint"`
	TimeoutSec int    `mapstructure:"timeout_seconds"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NEWSMINER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("ledger.path", "output/output.json")
	v.SetDefault("acquire.headless_enabled", true)
	v.SetDefault("acquire.nav_timeout_seconds", 45)
	v.SetDefault("acquire.settle_ms", 500)
	v.SetDefault("acquire.http_timeout_seconds", 15)
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.timeout_seconds", 20)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path must be set")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be %q or %q", ProviderOpenAI, ProviderGemini)
	}
	if c.LLM.TimeoutSec <= 0 {
		return fmt.Errorf("llm.timeout_seconds must be > 0")
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must be >= 0")
	}
	if c.Acquire.HTTPTimeoutSec <= 0 {
		return fmt.Errorf("acquire.http_timeout_seconds must be > 0")
	}
	return nil
}

// NavTimeout converts the headless navigation budget into a duration.
func (c AcquireConfig) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSec) * time.Second
}

// SettleDelay converts the post-navigation settle wait into a duration.
func (c AcquireConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleMs) * time.Millisecond
}

// HTTPTimeout converts the static strategy budget into a duration.
func (c AcquireConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

// Timeout converts the LLM call budget into a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}
