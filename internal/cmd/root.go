// Package cmd implements the focus CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
	noColor    bool
	verbose    bool
)

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "focus",
	Short: "A personal focus-session timer with website blocking",
	Long: `focus runs intention-driven focus sessions: it asks what you want to
get done, blocks distracting websites for the length of the session,
offers one extension, and records a short reflection into an
append-only log.

Get started:
  focus init          Create ~/.focus.yaml with defaults
  focus doctor        Check external tools
  focus start         Begin a session (also the default action)
  focus stats         Summarize the session log`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStart,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: .focus.yaml in cwd or home)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("focus version {{.Version}}\n")
}

func initEnv() {
	if configPath != "" {
		os.Setenv("FOCUS_CONFIG", configPath)
	}
	if noColor {
		os.Setenv("NO_COLOR", "1")
	}
	if verbose {
		os.Setenv("FOCUS_DEBUG", "1")
	}
}
