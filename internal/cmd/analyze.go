package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undistract/focus/internal/analysis"
	"github.com/undistract/focus/internal/config"
	"github.com/undistract/focus/internal/ui"
	"github.com/undistract/focus/pkg/shell"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Launch the external session analysis",
	Long: `Launch the external analysis tool over the session log. The tool
runs detached, the same way the "analysis please" phrase launches it
from inside a session setup.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault()
	dispatcher := analysis.New(cfg.Analysis.Command, config.ExpandHome(cfg.Analysis.Script), shell.NewRunner())

	if !dispatcher.Available() {
		return fmt.Errorf("%s is not installed; cannot run the analysis", cfg.Analysis.Command)
	}

	if err := dispatcher.Dispatch(); err != nil {
		return fmt.Errorf("failed to launch the analysis: %w", err)
	}

	ui.Success("Analysis launched")
	return nil
}
