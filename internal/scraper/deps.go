package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// NodeInstalled reports whether the Node.js runtime resolves on PATH.
func (s *Service) NodeInstalled() bool {
	_, err := s.lookPath(s.nodeCmd)
	return err == nil
}

// DependenciesInstalled reports whether the scraper's npm packages are
// present. The puppeteer directory under node_modules is the marker; a bare
// node_modules left behind by a failed install does not count.
func (s *Service) DependenciesInstalled() bool {
	root := filepath.Join(s.scraperDir, nodeModulesDirName)
	if !dirExists(root) {
		return false
	}
	return dirExists(filepath.Join(root, puppeteerDirName))
}

// InstallDependencies runs `npm install` inside the scraper directory.
func (s *Service) InstallDependencies() error {
	s.logger.Infow("npm_install_started", "dir", s.scraperDir)

	cmd := s.execCommand(s.npmCmd, "install")
	cmd.Dir = s.scraperDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: npm not found: %v", ErrInstallFailed, err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrInstallFailed, msg)
	}

	s.logger.Infow("npm_install_finished",
		"dir", s.scraperDir,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return nil
}

func (s *Service) ensureDependencies() error {
	if !s.NodeInstalled() {
		return fmt.Errorf("%w: install Node.js first", ErrNodeMissing)
	}
	if s.DependenciesInstalled() {
		return nil
	}
	return s.InstallDependencies()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
