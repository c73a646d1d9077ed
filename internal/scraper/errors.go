package scraper

import "errors"

// Every pipeline failure wraps exactly one of these sentinels so callers and
// tests can branch with errors.Is.
var (
	ErrInvalidRequest = errors.New("invalid scrape request")
	ErrNodeMissing    = errors.New("node.js is not installed")
	ErrInstallFailed  = errors.New("npm install failed")
	ErrTimeout        = errors.New("scraper timed out")
	ErrScraperFailed  = errors.New("scraper exited with an error")
	ErrNoResultsFile  = errors.New("scraper produced no results file")
	ErrBadResults     = errors.New("invalid scraper output")
	ErrRelocateFailed = errors.New("moving downloads failed")
	ErrAlreadyRunning = errors.New("another scrape is already running")
)
