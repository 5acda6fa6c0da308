package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newAskCmd creates the "ask" command: AI commentary on a symbol, keyed in
// the cache by the symbol and the exact question text.
func newAskCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "ask SYMBOL QUESTION...",
		Short: "Ask the AI a question about a stock",
		Long: "Ask the AI a question about a stock. Answers are cached per\n" +
			"(symbol, question) pair, so repeating a question is free while asking\n" +
			"something new about the same symbol always reaches the backend.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			question := strings.Join(args[1:], " ")

			resp, err := app.svc.GetAIAnalysis(cmd.Context(), symbol, question, refresh)
			if err != nil {
				return err
			}
			renderAIAnalysis(cmd.OutOrStdout(), symbol, question, resp, isTerminal(os.Stdout))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and ask again")
	return cmd
}
