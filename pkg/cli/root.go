// Package cli implements the harrec command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Build metadata injected by main via SetBuildInfo.
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// BuildInfo carries build-time metadata from the main package.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// SetBuildInfo records build metadata for the version command.
func SetBuildInfo(info BuildInfo) {
	if info.Version != "" {
		version = info.Version
	}
	if info.Commit != "" {
		commit = info.Commit
	}
	if info.BuildDate != "" {
		buildDate = info.BuildDate
	}
}

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "harrec",
	Short: "harrec records HTTP test traffic as HAR trace files",
	Long: `harrec records one HAR 1.2 entry per HTTP exchange performed through a
recording test client, and ships tooling for working with the resulting
trace files in CI.

Configuration can be provided via flags, environment variables (HARREC_*),
or a .harrec.yaml configuration file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
