package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/orbruno/web-scraper-cli/config"
	"github.com/orbruno/web-scraper-cli/internal/history"
	"github.com/orbruno/web-scraper-cli/internal/scraper"
)

func printSummary(w io.Writer, res scraper.Result, outputDir string, download bool) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Page title: %s\n", res.Title)
	fmt.Fprintln(w)

	if len(res.Cards) > 0 {
		fmt.Fprintf(w, "Cards found:  %d\n", len(res.Cards))
	}
	fmt.Fprintf(w, "Files found:  %d\n", len(res.Files))
	fmt.Fprintf(w, "Images found: %d\n", len(res.Images))
	fmt.Fprintf(w, "Links found:  %d\n", len(res.Links))

	if len(res.Files) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Downloadable files:")
		for _, f := range res.Files {
			fmt.Fprintf(w, "  - %s\n", f.DisplayName())
		}

		fmt.Fprintln(w)
		if download {
			fmt.Fprintf(w, "✅ Files downloaded to: %s\n", outputDir)
		} else {
			fmt.Fprintln(w, "Tip: Use --download to download files")
		}
	}
}

func printInfo(w io.Writer, cfg config.Config, svc *scraper.Service) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Web Scraper CLI")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scraper directory:      %s\n", svc.ScraperDir())
	fmt.Fprintf(w, "Default output:         %s\n", cfg.OutputDir)
	fmt.Fprintf(w, "History database:       %s\n", historyPathLabel(cfg.HistoryPath))
	fmt.Fprintf(w, "Node.js installed:      %s\n", mark(svc.NodeInstalled()))
	fmt.Fprintf(w, "Dependencies installed: %s\n", mark(svc.DependenciesInstalled()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported file types:")
	fmt.Fprintln(w, "  PDF, DOC, DOCX, XLS, XLSX, PPT, PPTX, ZIP, RAR, 7Z, TAR, GZ")
	fmt.Fprintln(w, "  JPG, JPEG, PNG, GIF, WEBP, SVG, BMP")
	fmt.Fprintln(w, "  MP3, MP4, WAV, AVI, MOV, MKV")
	fmt.Fprintln(w, "  TXT, CSV, JSON, XML")
}

func printHistory(w io.Writer, recs []history.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No scrape runs recorded yet.")
		return
	}

	for _, r := range recs {
		fmt.Fprintf(w, "%s  %-5s  files=%d images=%d links=%d  %s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Status,
			r.Files, r.Images, r.Links,
			(time.Duration(r.DurationMS) * time.Millisecond).String(),
			r.URL,
		)
		if r.Error != "" {
			fmt.Fprintf(w, "    error: %s\n", r.Error)
		}
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func historyPathLabel(path string) string {
	if path == "" {
		return "disabled"
	}
	return path
}
