// Package scraper drives the Node.js scraper as a subprocess and turns its
// on-disk artifacts into a Result the CLI can present.
//
// The contract with the script is file based: the service spawns
// `node scraper.js <url>` inside the scraper directory, signals options
// through environment variables, then reads downloads/scrape-results.json and
// optionally relocates the downloaded files.
package scraper

import (
	"context"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	scriptName         = "scraper.js"
	downloadsDirName   = "downloads"
	resultsFileName    = "scrape-results.json"
	screenshotFileName = "page-screenshot.png"
	nodeModulesDirName = "node_modules"
	puppeteerDirName   = "puppeteer"
	lockFileName       = ".webscrape.lock"
)

// DefaultTimeout bounds a single scraper invocation. Pages that keep the
// browser busy longer than this are treated as hung.
const DefaultTimeout = 300 * time.Second

// Config carries everything NewService needs. Zero values fall back to the
// usual defaults so tests can construct a Service from a bare scraper dir.
type Config struct {
	ScraperDir string
	NodeCmd    string
	NpmCmd     string
	Timeout    time.Duration
	Logger     *zap.SugaredLogger
}

// Service runs the scrape pipeline: validate, ensure dependencies, invoke the
// subprocess, load results, relocate downloads. One Service handles one
// scraper directory; concurrent runs against it are rejected by a lock file.
type Service struct {
	scraperDir string
	nodeCmd    string
	npmCmd     string
	timeout    time.Duration
	logger     *zap.SugaredLogger

	execCommand        func(name string, args ...string) *exec.Cmd
	execCommandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
	lookPath           func(file string) (string, error)
}

func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	nodeCmd := cfg.NodeCmd
	if nodeCmd == "" {
		nodeCmd = "node"
	}
	npmCmd := cfg.NpmCmd
	if npmCmd == "" {
		npmCmd = "npm"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		scraperDir:         cfg.ScraperDir,
		nodeCmd:            nodeCmd,
		npmCmd:             npmCmd,
		timeout:            timeout,
		logger:             logger,
		execCommand:        exec.Command,
		execCommandContext: exec.CommandContext,
		lookPath:           exec.LookPath,
	}
}

// ScraperDir returns the directory the service spawns the script from.
func (s *Service) ScraperDir() string { return s.scraperDir }

func (s *Service) downloadsDir() string {
	return filepath.Join(s.scraperDir, downloadsDirName)
}

func (s *Service) resultsPath() string {
	return filepath.Join(s.downloadsDir(), resultsFileName)
}

func (s *Service) scriptPath() string {
	return filepath.Join(s.scraperDir, scriptName)
}

// Outcome is what a completed run hands back to the caller.
type Outcome struct {
	RunID  string
	Result Result
	Moved  []string
}

// Run executes the whole pipeline for one request. The returned Outcome
// always carries the run ID, even when the run failed.
func (s *Service) Run(ctx context.Context, req Request) (Outcome, error) {
	runID := uuid.NewString()
	start := time.Now()
	out := Outcome{RunID: runID}

	s.logger.Infow("run_started",
		"run_id", runID,
		"url", req.URL,
		"download", req.Download,
		"debug", req.Debug,
	)

	if err := validateRequest(req); err != nil {
		return out, s.fail(runID, "validating", start, err)
	}

	release, err := s.acquireRunLock()
	if err != nil {
		return out, s.fail(runID, "locking", start, err)
	}
	defer release()

	if err := s.ensureDependencies(); err != nil {
		return out, s.fail(runID, "ensuring_dependencies", start, err)
	}

	if err := s.invoke(ctx, req); err != nil {
		return out, s.fail(runID, "invoking", start, err)
	}

	result, err := s.loadResults()
	if err != nil {
		return out, s.fail(runID, "loading", start, err)
	}
	out.Result = result

	if req.Download {
		moved, err := s.moveDownloads(req.OutputDir)
		out.Moved = moved
		if err != nil {
			return out, s.fail(runID, "relocating", start, err)
		}
	}

	s.logger.Infow("run_finished",
		"run_id", runID,
		"url", req.URL,
		"duration", time.Since(start).Round(time.Millisecond).String(),
		"cards", len(result.Cards),
		"files", len(result.Files),
		"images", len(result.Images),
		"links", len(result.Links),
		"moved", len(out.Moved),
	)
	return out, nil
}

func (s *Service) fail(runID, stage string, start time.Time, err error) error {
	s.logger.Infow("run_failed",
		"run_id", runID,
		"stage", stage,
		"duration", time.Since(start).Round(time.Millisecond).String(),
		"err", err.Error(),
	)
	return err
}
