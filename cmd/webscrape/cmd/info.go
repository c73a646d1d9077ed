package cmd

import (
	"github.com/spf13/cobra"

	"github.com/orbruno/web-scraper-cli/config"
	"github.com/orbruno/web-scraper-cli/internal/scraper"
)

func newInfoCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show scraper setup information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := scraper.NewService(scraper.Config{
				ScraperDir: cfg.ScraperDir,
				NodeCmd:    cfg.NodeCmd,
				NpmCmd:     cfg.NpmCmd,
			})
			printInfo(cmd.OutOrStdout(), cfg, svc)
			return nil
		},
	}
}
