package main

import (
	"os"

	"github.com/orbruno/web-scraper-cli/cmd/webscrape/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
