package scraper

import (
	"fmt"
	"os"
	"path/filepath"
)

// The scraper writes into one fixed downloads directory, so at most one run
// may be in flight per scraper directory. A lock file created with O_EXCL
// makes that explicit; a second invocation fails fast instead of corrupting
// the first run's artifacts.
func (s *Service) acquireRunLock() (release func(), err error) {
	path := s.lockPath()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w (remove %s if no scrape is active)", ErrAlreadyRunning, path)
		}
		return nil, fmt.Errorf("create run lock: %w", err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()

	return func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warnw("run_lock_remove_failed", "path", path, "err", err.Error())
		}
	}, nil
}

func (s *Service) lockPath() string {
	return filepath.Join(s.scraperDir, lockFileName)
}
