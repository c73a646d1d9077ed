package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/orbruno/web-scraper-cli/config"
	"github.com/orbruno/web-scraper-cli/internal/logs"
)

var errUsage = errors.New("usage")

func Execute() int {
	cfg, err := config.NewConfig(config.NewViper())
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}

	zl, err := logs.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}
	defer func() { _ = zl.Sync() }()

	root := newRootCmd(cfg, logs.NewSugaredLogger(zl))
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			_ = root.Help()
			return 2
		}
		return 1
	}
	return 0
}
