package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marketlens/marketlens/internal/models"
)

// newAnalyzeCmd creates the "analyze" command: full analysis bundles for one
// or more symbols, cache-first.
func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		refresh bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "analyze SYMBOL...",
		Short: "Fetch quote, fundamentals, and technicals for symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, app, args, refresh, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and fetch fresh data")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit raw JSON instead of formatted output")
	return cmd
}

// runAnalyze fetches all requested symbols in parallel with bounded
// concurrency, then renders them in the order given on the command line so
// output stays deterministic.
func runAnalyze(cmd *cobra.Command, app *App, symbols []string, refresh, jsonOut bool) error {
	ctx := cmd.Context()
	results := make([]*models.StockAnalysis, len(symbols))
	errs := make([]error, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, symbol := range symbols {
		g.Go(func() error {
			results[i], errs[i] = app.svc.GetStockData(gctx, symbol, refresh)
			return nil
		})
	}
	_ = g.Wait() // per-symbol errors are collected, not short-circuited

	styled := isTerminal(os.Stdout)
	failures := 0
	for i, symbol := range symbols {
		if errs[i] != nil {
			failures++
			cmd.PrintErrf("%s: %v\n", symbol, errs[i])
			continue
		}
		if jsonOut {
			encoded, err := json.MarshalIndent(results[i], "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(encoded))
			continue
		}
		renderAnalysis(cmd.OutOrStdout(), results[i], styled)
	}

	if failures == len(symbols) {
		return fmt.Errorf("all %d lookups failed", failures)
	}
	return nil
}
