package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/orbruno/web-scraper-cli/internal/history"
	"github.com/orbruno/web-scraper-cli/internal/scraper"
)

func TestPrintSummaryWithDownload(t *testing.T) {
	res := scraper.Result{
		Title:  "Example Domain",
		Cards:  []any{},
		Files:  []scraper.FileEntry{{Name: "report.pdf"}, {}},
		Images: []any{"a.png"},
		Links:  []any{"x", "y", "z"},
	}

	var buf bytes.Buffer
	printSummary(&buf, res, "/tmp/out", true)
	got := buf.String()

	for _, want := range []string{
		"Page title: Example Domain",
		"Files found:  2",
		"Images found: 1",
		"Links found:  3",
		"- report.pdf",
		"- unknown",
		"✅ Files downloaded to: /tmp/out",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Cards found") {
		t.Fatalf("cards row rendered for empty cards:\n%s", got)
	}
	if strings.Contains(got, "Tip:") {
		t.Fatalf("tip rendered alongside download confirmation:\n%s", got)
	}
}

func TestPrintSummaryTipWithoutDownload(t *testing.T) {
	res := scraper.Result{
		Title: "Docs",
		Cards: []any{"c1", "c2"},
		Files: []scraper.FileEntry{{Name: "report.pdf"}},
	}

	var buf bytes.Buffer
	printSummary(&buf, res, "/tmp/out", false)
	got := buf.String()

	if !strings.Contains(got, "Cards found:  2") {
		t.Fatalf("cards row missing:\n%s", got)
	}
	if !strings.Contains(got, "Tip: Use --download to download files") {
		t.Fatalf("tip missing:\n%s", got)
	}
	if strings.Contains(got, "downloaded to") {
		t.Fatalf("download confirmation without --download:\n%s", got)
	}
}

func TestPrintSummaryNoFiles(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, scraper.Result{Title: "Empty"}, "/tmp/out", true)
	got := buf.String()

	if strings.Contains(got, "Downloadable files") || strings.Contains(got, "Tip:") || strings.Contains(got, "downloaded to") {
		t.Fatalf("file section rendered with no files:\n%s", got)
	}
}

func TestPrintHistory(t *testing.T) {
	recs := []history.Record{
		{
			URL:        "https://example.com/docs",
			Status:     history.StatusOK,
			Files:      2,
			DurationMS: 1500,
			CreatedAt:  time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			URL:       "https://example.invalid",
			Status:    history.StatusError,
			Error:     "scraper exited with an error: net::ERR_NAME_NOT_RESOLVED",
			CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	printHistory(&buf, recs)
	got := buf.String()

	for _, want := range []string{
		"2026-02-01 10:30:00",
		"https://example.com/docs",
		"files=2",
		"error: scraper exited with an error",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("history output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil)
	if !strings.Contains(buf.String(), "No scrape runs recorded yet.") {
		t.Fatalf("unexpected empty-history output: %s", buf.String())
	}
}
