package scraper

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// moveDownloads relocates every regular file the scraper left in downloads/
// into outputDir, creating it (with parents) when needed. The results file
// and the debug screenshot belong to the scraper and stay put, as does any
// subdirectory. An existing file of the same name in outputDir is replaced.
//
// Returns the destination paths of the files that were moved, including any
// moved before an error stopped the pass.
func (s *Service) moveDownloads(outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrRelocateFailed, outputDir, err)
	}

	entries, err := os.ReadDir(s.downloadsDir())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelocateFailed, err)
	}

	keep := map[string]bool{
		resultsFileName:    true,
		screenshotFileName: true,
	}

	var moved []string
	for _, entry := range entries {
		if keep[entry.Name()] || !entry.Type().IsRegular() {
			continue
		}
		src := filepath.Join(s.downloadsDir(), entry.Name())
		dest := filepath.Join(outputDir, entry.Name())
		if err := moveFile(src, dest); err != nil {
			return moved, fmt.Errorf("%w: %s: %v", ErrRelocateFailed, entry.Name(), err)
		}
		moved = append(moved, dest)
	}
	return moved, nil
}

// moveFile renames src to dest, falling back to copy-and-remove when rename
// fails (typically because the two paths live on different filesystems).
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}

	out, err := os.Create(dest)
	if err != nil {
		in.Close()
		return err
	}

	_, copyErr := io.Copy(out, in)
	in.Close()
	if closeErr := out.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		return copyErr
	}
	return os.Remove(src)
}
