package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/dirclean/internal/config"
	"github.com/lakshaymaurya-felt/dirclean/internal/logging"
)

var (
	// Global flags
	debug      bool
	logFile    string
	configPath string
	workers    int

	// prefs is loaded before any subcommand runs.
	prefs config.Prefs

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "dirclean",
	Short: "Find and remove directories in bulk",
	Long: `dirclean - find and remove directories in bulk.

Scans a directory tree for node_modules folders, build artifacts, caches,
empty directories or anything matching a name pattern, and deletes them
with dry-run previews, filters, trash support and confirmation prompts.
Also ranks disk usage and points out cleanup opportunities.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		switch cmd.Name() {
		case "help", "completion", "version":
			return nil
		}

		p, err := config.LoadPrefs(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("log-file") {
			p.Log.File = logFile
		}
		if flags.Changed("workers") {
			if workers < 0 {
				return fmt.Errorf("--workers must not be negative, got %d", workers)
			}
			p.Workers = workers
		}
		prefs = p

		logging.Init(logging.Config{Level: p.Log.Level, Debug: debug, File: p.Log.File})
		logger := logging.Logger()
		logger.Debug().
			Str("version", appVersion).
			Str("command", cmd.Name()).
			Int("workers", p.Workers).
			Msg("starting")
		return nil
	},
}

// Execute runs the root command. SIGINT cancels the running operation;
// partial results are still summarized.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debug, "debug", false, "Show detailed operation logs")
	pf.StringVar(&logFile, "log-file", "", "Also write logs to this file (rotated)")
	pf.StringVar(&configPath, "config", "", "Preference file (default $XDG_CONFIG_HOME/dirclean/config.yaml)")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "Parallel deletion workers (0 = one per CPU)")

	// Register all subcommands
	rootCmd.AddCommand(nodeModulesCmd)
	rootCmd.AddCommand(subdirsCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(emptyDirsCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
