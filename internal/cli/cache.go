package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marketlens/marketlens/internal/service"
)

// newCacheCmd creates the "cache" command group.
func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the persistent caches",
	}
	cmd.AddCommand(newCacheStatsCmd(app), newCacheClearCmd(app))
	return cmd
}

// newCacheStatsCmd reports a live census of all three caches.
func newCacheStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts per cache domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderCacheStats(cmd.OutOrStdout(), app.svc.CacheStats())
			return nil
		},
	}
}

// newCacheClearCmd empties one domain, or everything.
func newCacheClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "clear [stock|ai|screener|all]",
		Short:     "Clear cached entries and their persisted slots",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"stock", "ai", "screener", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			domain := service.DomainAll
			if len(args) == 1 {
				domain = service.Domain(args[0])
			}
			switch domain {
			case service.DomainStock, service.DomainAI, service.DomainScreener, service.DomainAll:
			default:
				return fmt.Errorf("unknown cache domain %q", domain)
			}

			app.svc.ClearCache(domain)
			cmd.Printf("Cleared %s cache\n", domain)
			return nil
		},
	}
}
