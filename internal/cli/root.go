package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yapay-ai/cloud-cost-optimizer/internal/config"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/alerts"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/artifacts"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/llm"
	"github.com/yapay-ai/cloud-cost-optimizer/pkg/storage"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cco",
	Short: "Cloud Cost Optimizer - LLM-driven infrastructure cost analysis",
	Long: `Cloud Cost Optimizer simulates a cloud cost analysis pipeline: it extracts a
project profile from a free-text description, synthesizes plausible monthly
billing records, and generates cost-optimization recommendations, all driven
by a text-completion endpoint with strict validation of every output.

Running without a subcommand starts the interactive menu.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMenu(cmd)
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.cco/config.yaml)")
}

// loadConfig loads the configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// newClient creates the completion client from config.
func newClient(cfg *config.Config, logger *slog.Logger) *llm.Client {
	timeout, err := time.ParseDuration(cfg.LLM.Timeout)
	if err != nil || timeout == 0 {
		timeout = 60 * time.Second
	}

	return llm.NewClient(llm.Config{
		Endpoint:    cfg.LLM.Endpoint,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Timeout:     timeout,
		MaxRetries:  cfg.LLM.MaxRetries,
		Temperature: cfg.LLM.Temperature,
	}, logger)
}

// newArtifactStore creates the working-directory artifact store.
func newArtifactStore(cfg *config.Config) *artifacts.Store {
	return artifacts.NewStore(cfg.Workdir)
}

// initStorage opens the run history database. A failure is non-fatal: the
// pipeline runs without history.
func initStorage(cfg *config.Config, logger *slog.Logger) storage.Storage {
	store, err := storage.NewSQLite(cfg.Storage.Path)
	if err != nil {
		logger.Warn("history storage unavailable", "path", cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}

// initNotifiers creates alert notifiers from config.
func initNotifiers(cfg *config.Config) []alerts.Notifier {
	var notifiers []alerts.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alerts.NewSlackNotifier(
			cfg.Alerts.Slack.WebhookURL,
			cfg.Alerts.Slack.Channel,
		))
	}

	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alerts.NewWebhookNotifier(
			cfg.Alerts.Webhook.URL,
			cfg.Alerts.Webhook.Secret,
		))
	}

	return notifiers
}
