package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbruno/web-scraper-cli/config"
	"github.com/orbruno/web-scraper-cli/internal/scraper"
)

func newInstallCmd(cfg config.Config, logger *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the scraper's npm dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := scraper.NewService(scraper.Config{
				ScraperDir: cfg.ScraperDir,
				NodeCmd:    cfg.NodeCmd,
				NpmCmd:     cfg.NpmCmd,
				Logger:     logger,
			})
			out := cmd.OutOrStdout()

			if !svc.NodeInstalled() {
				return fmt.Errorf("%w: install Node.js first", scraper.ErrNodeMissing)
			}
			if svc.DependenciesInstalled() {
				fmt.Fprintln(out, "Dependencies are already installed.")
				return nil
			}

			fmt.Fprintln(out, "Installing Puppeteer dependencies...")
			if err := svc.InstallDependencies(); err != nil {
				return err
			}
			fmt.Fprintln(out, "✅ Dependencies installed successfully!")
			return nil
		},
	}
}
