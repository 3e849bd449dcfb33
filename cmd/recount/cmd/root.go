// Package cmd implements the recount CLI commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/invkit/recount/internal/cmd/globals"
	"github.com/invkit/recount/internal/cmd/output"
	"github.com/invkit/recount/internal/config"
	"github.com/invkit/recount/pkg/logging"
)

var (
	configFile  string
	globalFlags *globals.Flags
	cfg         *config.Config

	// Version is the CLI version set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "recount",
	Short: "Cycle-count reconciliation CLI",
	Long: `Recount reconciles physical cycle-count results against system
inventory. It joins the recount workbook with the warehouse-locations
master, recommends transfers, adjustments, and investigations per
item group, and exports a reviewer-ready workbook.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.recount.yaml)")
	globalFlags = globals.AddFlags(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.Set("config", configFile)
	}

	loaded, err := config.Load()
	if err != nil {
		cobra.CheckErr(err)
	}
	cfg = loaded
	cfg.UpdateFromFlags(globalFlags.Verbose, globalFlags.Quiet, globalFlags.NoColor, globalFlags.Output)

	configureLogging()
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	if globalFlags.Output == "" {
		globalFlags.Output = string(output.DetectFormat(""))
	}
	return nil
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	if cfg.Quiet {
		level = zerolog.WarnLevel
	}
	if parsed, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && !cfg.Verbose && !cfg.Quiet {
		level = parsed
	}

	logger := logging.New(os.Stderr).Level(level)
	logging.SetDefault(logger)
}

// outputFormat resolves the format for the current invocation.
func outputFormat() (output.Format, error) {
	return output.ParseFormat(globalFlags.Output)
}
