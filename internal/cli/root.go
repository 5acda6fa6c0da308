// Package cli defines the marketlens command tree. The root command is the
// application's composition point: it loads configuration, sets up logging,
// and constructs the backend client and cache service that every subcommand
// shares.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marketlens/marketlens/internal/api"
	"github.com/marketlens/marketlens/internal/cache"
	"github.com/marketlens/marketlens/internal/config"
	"github.com/marketlens/marketlens/internal/logging"
	"github.com/marketlens/marketlens/internal/service"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Set once during command setup.

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// App holds the shared objects built once per invocation and handed to
// subcommands: the loaded config, the backend client, and the cache service.
// The service is constructed here, at the composition point, never as a
// hidden package-level singleton.
type App struct {
	cfg      *config.Config
	logger   zerolog.Logger
	closeLog func() error
	backend  *api.Client
	svc      *service.Service
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		return 1
	}
	return 0
}

// NewRootCmd creates the root Cobra command with all subcommands attached.
func NewRootCmd(version string) *cobra.Command {
	app := &App{}
	var (
		cfgPath string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "marketlens",
		Short: "Stock analysis terminal for the Market Lens backend",
		Long: "Market Lens: quotes, fundamentals, technicals, AI commentary, and screeners,\n" +
			"with persistent TTL caching so repeated lookups cost no network calls.",
		Version:      version,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd, cfgPath, debug)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ~/.marketlens/config.yaml)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newAnalyzeCmd(app),
		newEvaluateCmd(app),
		newAskCmd(app),
		newScreenerCmd(app),
		newCacheCmd(app),
		newDashboardCmd(app),
		newHealthCmd(app),
	)
	return cmd
}

const rootCmdExample = `  # Full analysis for one or more symbols
  marketlens analyze AAPL MSFT

  # Force-refresh past the cache
  marketlens analyze AAPL --refresh

  # Ask the AI a question about a stock
  marketlens ask AAPL "is the current valuation stretched?"

  # Fetch a screener template page
  marketlens screener 42

  # Inspect or clear the persistent caches
  marketlens cache stats
  marketlens cache clear stock

  # Interactive watchlist dashboard
  marketlens dashboard`

// init builds the App. Called from PersistentPreRunE so every subcommand
// sees the same wiring.
func (a *App) init(cmd *cobra.Command, cfgPath string, debug bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}
	if debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.File = ""
	}
	a.logger, a.closeLog = logging.New(logCfg)
	logger = logging.Component(a.logger, "cli")

	var store cache.Store = cache.DiscardStore{}
	if cfg.Cache.IsEnabled() {
		slotStore, storeErr := cache.NewSlotStore(cfg.Cache.Dir, logging.Component(a.logger, "store"))
		if storeErr != nil {
			// Session-only caching still works without a usable directory.
			logger.Warn().Err(storeErr).Str("dir", cfg.Cache.Dir).Msg("cache persistence unavailable")
		} else {
			store = slotStore
		}
	}

	backend, err := api.NewClient(api.Options{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       cfg.Backend.Timeout.Std(),
		ScreenerToken: cfg.Backend.ScreenerToken,
		MinVersion:    cfg.Backend.MinVersion,
	}, logging.Component(a.logger, "api"))
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}
	a.backend = backend

	a.svc = service.New(backend, store, service.Config{
		StockTTL:      cfg.Cache.StockTTL.Std(),
		AITTL:         cfg.Cache.AITTL.Std(),
		ScreenerTTL:   cfg.Cache.ScreenerTTL.Std(),
		SweepInterval: cfg.Cache.SweepInterval.Std(),
	}, a.logger)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

// close releases resources opened by init.
func (a *App) close() error {
	if a.closeLog != nil {
		return a.closeLog()
	}
	return nil
}
