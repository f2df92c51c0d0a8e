package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpggio/cadence/internal/app"
	"github.com/rpggio/cadence/internal/config"
	"github.com/rpggio/cadence/internal/sqlite"
)

// cli carries state shared by every subcommand.
type cli struct {
	configPath string
	logLevel   string

	cfg      config.Config
	logger   *slog.Logger
	logClose func() error
	stdout   io.Writer
	stderr   io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "cadence",
		Short: "Content calendar and scheduling server",
		Long: `cadence plans, schedules and publishes social media content.

Run "cadence serve" to start the REST API and MCP endpoint. The publisher
posts due schedules in the background when enabled.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.logClose != nil {
				return c.logClose()
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.yaml or .toml); defaults to $CADENCE_CONFIG_PATH")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(c),
		newMigrateCmd(c),
		newPublishCmd(c),
		newGridCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	path := c.configPath
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if mode, _ := cmd.Flags().GetString("transport"); mode != "" {
		cfg.Transport.Mode = strings.ToLower(mode)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	c.cfg = cfg

	// stdout carries JSON-RPC in stdio mode.
	logWriter := c.stdout
	if cfg.Transport.Mode == "stdio" {
		logWriter = c.stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(c.stderr, "log file error: %v\n", err)
		} else {
			c.logClose = file.Close
			logWriter = fileWriter
		}
	}
	c.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return nil
}

// openApp opens the database, applies migrations and wires services.
func (c *cli) openApp(ctx context.Context) (*app.App, func(), error) {
	if err := ensureDBDir(c.cfg.DB.Path); err != nil {
		return nil, nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(c.cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrationsContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	a := app.New(db, app.Options{
		TokenTTL: c.cfg.Auth.TokenTTL.Duration,
		Logger:   c.logger,
	})
	closeDB := func() {
		if err := db.Close(); err != nil {
			c.logger.Error("failed to close database", "error", err)
		}
	}
	return a, closeDB, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
