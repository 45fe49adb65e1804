package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BrettScheepers/fightsight/internal/config"
	"github.com/BrettScheepers/fightsight/internal/telemetry"
)

var (
	cfgFile  string
	logLevel string

	// cfg is populated by PersistentPreRunE and shared with all subcommands.
	cfg *config.Config

	// app holds all wired dependencies; populated by PersistentPreRunE.
	app *AppContext
)

var rootCmd = &cobra.Command{
	Use:   "cv-service",
	Short: "FightSight CV service — combat sport video analysis API",
	Long: `The FightSight CV service fronts the platform's computer-vision
pipeline. It exposes the service-info, liveness, and deep-health HTTP
endpoints consumed by the web frontend and container orchestration.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogger(logLevel, "")

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// --log-level flag takes precedence over value in config file.
		if cmd.Flags().Changed("log-level") {
			cfg.Telemetry.LogLevel = logLevel
		}

		// Re-init with the resolved level and the optional file sink.
		initLogger(cfg.Telemetry.LogLevel, cfg.Telemetry.LogFile)

		app, err = buildAppContext(cfg)
		if err != nil {
			return fmt.Errorf("building app context: %w", err)
		}

		return nil
	}

	rootCmd.AddCommand(serverCmd)
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogger installs the process-wide slog logger: JSON to stdout, wrapped
// for trace correlation, teed to a file when logFile is set.
func initLogger(level, logFile string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Warn("cannot open log file — logging to stdout only", "path", logFile, "err", err)
		} else {
			handler = telemetry.NewTeeHandler(handler, slog.NewJSONHandler(f, opts))
		}
	}

	slog.SetDefault(slog.New(telemetry.NewTraceHandler(handler)))
}
