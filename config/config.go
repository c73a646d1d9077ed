package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// ScraperDir is the directory holding scraper.js, its node_modules and
	// its downloads/ output directory.
	ScraperDir string

	// OutputDir is where downloaded artifacts are moved when --download is set.
	OutputDir string

	NodeCmd string
	NpmCmd  string

	// ScrapeTimeout is the hard wall-clock limit for one scraper run.
	ScrapeTimeout time.Duration

	// HistoryPath is the local run-history database
	// (optional; WEBSCRAPE_HISTORY_PATH=off disables it).
	HistoryPath string

	LogLevel string
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("WEBSCRAPE_SCRAPER_DIR", "")
	v.SetDefault("WEBSCRAPE_OUTPUT_DIR", defaultOutputDir())
	v.SetDefault("WEBSCRAPE_NODE_CMD", "node")
	v.SetDefault("WEBSCRAPE_NPM_CMD", "npm")
	v.SetDefault("WEBSCRAPE_TIMEOUT", "300s")
	v.SetDefault("WEBSCRAPE_HISTORY_PATH", defaultHistoryPath())
	v.SetDefault("LOG_LEVEL", "info")

	return v
}

func NewConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		ScraperDir:    ResolveScraperDir(v.GetString("WEBSCRAPE_SCRAPER_DIR")),
		OutputDir:     v.GetString("WEBSCRAPE_OUTPUT_DIR"),
		NodeCmd:       v.GetString("WEBSCRAPE_NODE_CMD"),
		NpmCmd:        v.GetString("WEBSCRAPE_NPM_CMD"),
		ScrapeTimeout: v.GetDuration("WEBSCRAPE_TIMEOUT"),
		HistoryPath:   normalizeHistoryPath(v.GetString("WEBSCRAPE_HISTORY_PATH")),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}

	if strings.TrimSpace(cfg.OutputDir) == "" {
		return Config{}, fmt.Errorf("invalid WEBSCRAPE_OUTPUT_DIR (empty)")
	}
	if cfg.ScrapeTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid WEBSCRAPE_TIMEOUT %q", v.GetString("WEBSCRAPE_TIMEOUT"))
	}
	if strings.TrimSpace(cfg.NodeCmd) == "" {
		return Config{}, fmt.Errorf("invalid WEBSCRAPE_NODE_CMD (empty)")
	}
	if strings.TrimSpace(cfg.NpmCmd) == "" {
		return Config{}, fmt.Errorf("invalid WEBSCRAPE_NPM_CMD (empty)")
	}

	return cfg, nil
}

// ResolveScraperDir picks the scraper directory: an explicit value wins,
// then a scraper/ directory next to the installed binary, then scraper/
// under the current working directory.
func ResolveScraperDir(explicit string) string {
	if clean := strings.TrimSpace(explicit); clean != "" {
		return clean
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "scraper")
		if dirExists(dir) {
			return dir
		}
	}

	wd, err := os.Getwd()
	if err != nil || strings.TrimSpace(wd) == "" {
		return "scraper"
	}
	return filepath.Join(wd, "scraper")
}

func normalizeHistoryPath(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.EqualFold(clean, "off") {
		return ""
	}
	return clean
}

func defaultOutputDir() string {
	return filepath.Join(userHomeDir(), "Downloads", "web-scraper")
}

func defaultHistoryPath() string {
	return filepath.Join(userHomeDir(), ".webscrape", "history.db")
}

func userHomeDir() string {
	if h, err := os.UserHomeDir(); err == nil && strings.TrimSpace(h) != "" {
		return h
	}
	return "."
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
