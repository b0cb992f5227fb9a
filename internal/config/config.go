package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all Cloud Cost Optimizer configuration.
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Workdir  string         `mapstructure:"workdir"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// LLMConfig defines the completion endpoint settings.
type LLMConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxRetries  int     `mapstructure:"max_retries"`
	Temperature float64 `mapstructure:"temperature"`
}

// StorageConfig defines history database settings.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// AlertsConfig defines alerting integrations.
type AlertsConfig struct {
	Slack   SlackConfig   `mapstructure:"slack"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

// SlackConfig defines Slack webhook settings.
type SlackConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	WebhookURL string `mapstructure:"webhook_url"`
	Channel    string `mapstructure:"channel"`
}

// WebhookConfig defines generic webhook settings.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Secret  string `mapstructure:"secret"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultsConfig defines default values for unspecified profile fields.
type DefaultsConfig struct {
	BudgetINR int `mapstructure:"budget_inr"`
}

// Load reads configuration from file and environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}

		v.AddConfigPath(filepath.Join(home, ".cco"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Defaults
	home, _ := os.UserHomeDir()
	v.SetDefault("llm.endpoint", "https://router.huggingface.co/v1/chat/completions")
	v.SetDefault("llm.model", "meta-llama/Llama-3.1-8B-Instruct")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("workdir", ".")
	v.SetDefault("storage.path", filepath.Join(home, ".cco", "history.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("defaults.budget_inr", 5000)
	v.SetDefault("alerts.slack.channel", "#cloud-costs")

	// Environment variables
	v.SetEnvPrefix("CCO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
