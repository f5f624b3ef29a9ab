// Package ui implements the seqview command line.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nightsky/seqview/internal/config"
	"github.com/nightsky/seqview/internal/logging"
	"github.com/nightsky/seqview/internal/store"
	"github.com/nightsky/seqview/internal/tui/theme"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// RecentStore records recently opened sequence files.
type RecentStore interface {
	Touch(ctx context.Context, path string) error
	Recent(ctx context.Context) ([]store.RecentFile, error)
	Clear(ctx context.Context) error
	Close() error
}

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	logger *slog.Logger

	// configErr is the load error tolerated by commands marked lenientConfig.
	configErr error

	// Global flags
	configPath string
	themeName  string
	debug      bool // Enable debug logging

	recent    RecentStore
	openStore func(cfg *config.Config) (RecentStore, error)
	closeLog  func() error
	copy      func(string) error
}

// lenientConfig marks commands that fall back to defaults when the
// config file cannot be loaded.
const lenientConfig = "lenient-config"

// NewApp creates a new CLI application. A nil cfg is loaded from --config,
// or the default path, once flags are parsed.
func NewApp(cfg *config.Config) *App {
	a := &App{
		config:    cfg,
		logger:    logging.Discard(),
		openStore: openSQLite,
		copy:      writeClipboard,
	}

	a.root = &cobra.Command{
		Use:   "seqview",
		Short: "Inspect and watch astrophotography sequence files",
		Long: `seqview shows the progress of an imaging sequence: which target is
selected, how many frames are done, and how long the rest will take.

Use 'seqview status' for a one-shot summary and 'seqview watch' for a
live view that reloads the file while the sequencer runs.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Add global flags
	a.root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")
	a.root.PersistentFlags().StringVar(&a.themeName, "theme", "", "Theme override ("+joinThemes()+")")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+" unless log.file is set)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.statusCmd())
	a.root.AddCommand(a.watchCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.themesCmd())
	a.root.AddCommand(a.recentCmd())
	a.root.AddCommand(a.copyIDCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

// setup applies the global flags and opens the logger.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" || a.config == nil {
		path := a.configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		cfg, err := config.LoadFrom(path)
		switch {
		case err == nil:
			a.config = cfg
		case cmd.Annotations[lenientConfig] != "":
			a.config, a.configErr = config.Default(), err
		default:
			return fmt.Errorf("loading config: %w", err)
		}
	}

	if a.themeName != "" {
		if !theme.IsAvailable(a.themeName) {
			return fmt.Errorf("unknown theme %q (available: %s)", a.themeName, joinThemes())
		}
		a.config.UI.Theme = a.themeName
	}

	level, file := a.config.Log.Level, a.config.Log.File
	if a.debug {
		level = "debug"
		if file == "" {
			file = logging.DebugLogPath
		}
	}

	open := logging.Open
	if cmd.Name() == "watch" {
		open = logging.OpenQuiet
	}
	logger, closeLog, err := open(level, file)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog
	a.logger.Debug("starting", "command", cmd.Name(), "version", Version)
	return nil
}

// store opens the recent files store on first use.
func (a *App) store() (RecentStore, error) {
	if a.recent != nil {
		return a.recent, nil
	}
	s, err := a.openStore(a.config)
	if err != nil {
		return nil, fmt.Errorf("opening recent files: %w", err)
	}
	a.recent = s
	return s, nil
}

// touchRecent records path as recently opened. Failures are logged, not
// returned: the recent list is a convenience.
func (a *App) touchRecent(ctx context.Context, path string) {
	s, err := a.store()
	if err == nil {
		err = s.Touch(ctx, path)
	}
	if err != nil {
		a.logger.Warn("recording recent file", "path", path, "err", err)
	}
}

func openSQLite(cfg *config.Config) (RecentStore, error) {
	return store.New(cfg.Storage.DBPath, cfg.Storage.MaxRecent)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seqview %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var errs []error
	if a.recent != nil {
		errs = append(errs, a.recent.Close())
		a.recent = nil
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
		a.closeLog = nil
	}
	return errors.Join(errs...)
}
