package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbruno/web-scraper-cli/config"
)

var version = "1.0.0"

func newRootCmd(cfg config.Config, logger *zap.SugaredLogger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "webscrape",
		Short:         "Scrape web pages with a headless browser and collect their files",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errUsage
		},
	}

	rootCmd.AddCommand(
		newScrapeCmd(cfg, logger),
		newInfoCmd(cfg),
		newInstallCmd(cfg, logger),
		newHistoryCmd(cfg, logger),
	)
	return rootCmd
}
