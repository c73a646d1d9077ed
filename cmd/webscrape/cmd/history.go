package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbruno/web-scraper-cli/config"
	"github.com/orbruno/web-scraper-cli/internal/history"
)

func newHistoryCmd(cfg config.Config, logger *zap.SugaredLogger) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scrape runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(history.Config{Path: cfg.HistoryPath, Logger: logger})
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if !store.Enabled() {
				fmt.Fprintln(out, "History is disabled (set WEBSCRAPE_HISTORY_PATH to enable it).")
				return nil
			}

			recs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printHistory(out, recs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")
	return cmd
}
