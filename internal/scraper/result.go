package scraper

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// UnknownTitle is rendered when the scraper did not report a page title.
const UnknownTitle = "Unknown Page"

// Result is the deserialized contents of scrape-results.json. Every key is
// optional on the wire; loadResults fills in the zero cases so downstream
// code never branches on nil.
type Result struct {
	Title  string      `json:"title"`
	Cards  []any       `json:"cards"`
	Files  []FileEntry `json:"files"`
	Images []any       `json:"images"`
	Links  []any       `json:"links"`
}

// FileEntry is one downloadable file advertised by the scraper. The script
// writes more keys (url, size) but only the name is presented.
type FileEntry struct {
	Name string `json:"name"`
}

// DisplayName returns the entry's name, or a placeholder when the scraper
// omitted it.
func (f FileEntry) DisplayName() string {
	if strings.TrimSpace(f.Name) == "" {
		return "unknown"
	}
	return f.Name
}

// loadResults reads and decodes the results file the subprocess left behind.
func (s *Service) loadResults() (Result, error) {
	path := s.resultsPath()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("%w (expected %s)", ErrNoResultsFile, path)
		}
		return Result{}, fmt.Errorf("read results file: %w", err)
	}

	var res Result
	if err := json.Unmarshal(b, &res); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrBadResults, err)
	}

	res.applyDefaults()
	return res, nil
}

func (r *Result) applyDefaults() {
	if strings.TrimSpace(r.Title) == "" {
		r.Title = UnknownTitle
	}
	if r.Cards == nil {
		r.Cards = []any{}
	}
	if r.Files == nil {
		r.Files = []FileEntry{}
	}
	if r.Images == nil {
		r.Images = []any{}
	}
	if r.Links == nil {
		r.Links = []any{}
	}
}
