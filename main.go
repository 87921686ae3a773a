package main

import (
	"fmt"
	"os"

	"github.com/lakshaymaurya-felt/dirclean/cmd"
	"github.com/lakshaymaurya-felt/dirclean/internal/ui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
