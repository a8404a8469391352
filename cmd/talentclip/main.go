package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/talentclip/config"
	"github.com/use-agent/talentclip/models"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "talentclip",
	Short: "Collect LinkedIn profiles from your browser and register them as talents",
	Long: `talentclip reads the LinkedIn profile open in your browser, lets you add
a possible role, tags and notes, and posts the record to the talent API.

Configuration comes from TALENTCLIP_* environment variables or a .env file.`,
	Version:      models.Version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		initLogger(cfg.Log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, collectCmd, submitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogger configures slog based on the LogConfig. Logs go to stderr so
// command output on stdout stays machine-readable.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
