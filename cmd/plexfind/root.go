package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexfind/internal/config"
	"github.com/vmunix/plexfind/internal/plex"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var errPlexNotConfigured = errors.New("plex server not configured: set [plex] url and token, or PLEX_URL and PLEX_TOKEN")

var rootCmd = &cobra.Command{
	Use:   "plexfind",
	Short: "Search a Plex library in plain language",
	Long: `plexfind - search a Plex Media Server library in plain language

Queries like "unwatched 90s sci-fi movies under 2 hours" are turned into
Plex library filters and run against the matching library section.
Structured flags (--genre, --min-rating, ...) refine or replace the text.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("plexfind {{.Version}}\n")
}

// loadConfig loads the config named by --config, or the discovered one.
// Without any config file it falls back to defaults plus PLEX_URL and
// PLEX_TOKEN from the environment.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			cfg := config.Default()
			cfg.Plex.URL = os.Getenv("PLEX_URL")
			cfg.Plex.Token = os.Getenv("PLEX_TOKEN")
			return cfg, nil
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger writes to stderr so stdout stays clean for --json.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func newPlexClient(cfg *config.Config, logger *slog.Logger) (*plex.Client, error) {
	if !cfg.Plex.Configured() {
		return nil, errPlexNotConfigured
	}
	return plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, logger, plex.WithTimeout(cfg.Plex.Timeout)), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
