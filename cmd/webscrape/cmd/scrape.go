package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orbruno/web-scraper-cli/config"
	"github.com/orbruno/web-scraper-cli/internal/envutil"
	"github.com/orbruno/web-scraper-cli/internal/history"
	"github.com/orbruno/web-scraper-cli/internal/scraper"
)

func newScrapeCmd(cfg config.Config, logger *zap.SugaredLogger) *cobra.Command {
	var (
		download  bool
		outputDir string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Scrape a web page and optionally download its files",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := scraper.NewService(scraper.Config{
				ScraperDir: cfg.ScraperDir,
				NodeCmd:    cfg.NodeCmd,
				NpmCmd:     cfg.NpmCmd,
				Timeout:    cfg.ScrapeTimeout,
				Logger:     logger,
			})

			req := scraper.Request{
				URL:       args[0],
				Download:  download,
				Debug:     debug,
				OutputDir: outputDir,
			}

			start := time.Now()
			outcome, runErr := svc.Run(cmd.Context(), req)
			recordRun(cmd.Context(), cfg, logger, outcome, req, runErr, time.Since(start))

			if runErr != nil {
				return runErr
			}

			printSummary(cmd.OutOrStdout(), outcome.Result, outputDir, download)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&download, "download", "d", false, "Download the files found on the page")
	cmd.Flags().StringVarP(&outputDir, "output", "o", cfg.OutputDir, "Directory downloaded files are moved to")
	cmd.Flags().BoolVar(&debug, "debug", envutil.Bool(os.Getenv, "WEBSCRAPE_DEBUG", false), "Run the browser headed for debugging")
	return cmd
}

// recordRun persists the attempt to the history store. Persistence is best
// effort: open or write failures are logged and swallowed so they never mask
// the scrape result. Requests rejected up front are not worth recording.
func recordRun(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger, outcome scraper.Outcome, req scraper.Request, runErr error, elapsed time.Duration) {
	if errors.Is(runErr, scraper.ErrInvalidRequest) || errors.Is(runErr, scraper.ErrAlreadyRunning) {
		return
	}

	store, err := history.Open(history.Config{Path: cfg.HistoryPath, Logger: logger})
	if err != nil {
		logger.Warnw("history_open_failed", "err", err.Error())
		return
	}
	defer store.Close()

	rec := history.Record{
		ID:         outcome.RunID,
		URL:        req.URL,
		Status:     history.StatusOK,
		Title:      outcome.Result.Title,
		Cards:      len(outcome.Result.Cards),
		Files:      len(outcome.Result.Files),
		Images:     len(outcome.Result.Images),
		Links:      len(outcome.Result.Links),
		Downloaded: len(outcome.Moved) > 0,
		DurationMS: elapsed.Milliseconds(),
	}
	if runErr != nil {
		rec.Status = history.StatusError
		rec.Error = runErr.Error()
	}

	if err := store.Record(ctx, rec); err != nil {
		logger.Warnw("history_record_failed", "err", err.Error())
	}
}
