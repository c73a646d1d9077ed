package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// invoke spawns `node scraper.js <url>` with the scraper directory as its
// working directory and waits for it to exit. The script finds its own files
// relative to the working directory, so Dir is part of the contract.
func (s *Service) invoke(ctx context.Context, req Request) error {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := s.execCommandContext(runCtx, s.nodeCmd, s.scriptPath(), req.URL)
	cmd.Dir = s.scraperDir
	cmd.Env = childEnv(cmd.Environ(), req)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Infow("scraper_exec_started",
		"cmd", s.nodeCmd,
		"script", s.scriptPath(),
		"url", req.URL,
		"timeout", s.timeout.String(),
	)

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrNodeMissing, err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrScraperFailed, msg)
	}

	s.logger.Infow("scraper_exec_finished",
		"url", req.URL,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return nil
}

// childEnv clones the parent environment and appends the variables the script
// branches on. The script only checks for the literal string "true".
func childEnv(base []string, req Request) []string {
	env := append([]string(nil), base...)
	if req.Download {
		env = append(env, "DOWNLOAD=true")
	}
	if req.Debug {
		env = append(env, "DEBUG=true")
	}
	return env
}
