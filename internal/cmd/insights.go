package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/undistract/focus/internal/config"
	"github.com/undistract/focus/internal/logbook"
	"github.com/undistract/focus/internal/report"
	"github.com/undistract/focus/internal/ui"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Write a markdown insights report from the session log",
	Long: `Aggregate the session log into a markdown report with summary
statistics, productivity patterns, and common focus areas, written to
focus_insights/focus_insights.md under the current directory.`,
	RunE: runInsights,
}

var insightsOut string

func init() {
	insightsCmd.Flags().StringVarP(&insightsOut, "out", "o", "focus_insights", "directory to write the report into")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault()

	records, err := logbook.ReadAll(config.ExpandHome(cfg.Log.Path))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ui.Info("No sessions logged yet. Run 'focus start' to begin one.")
		return nil
	}

	doc := report.RenderMarkdown(report.Summarize(records), report.TopKeywords(records, 5))

	if err := os.MkdirAll(insightsOut, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", insightsOut, err)
	}
	outPath := filepath.Join(insightsOut, "focus_insights.md")
	if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	ui.Successf("Wrote %s (%d sessions)", outPath, len(records))
	return nil
}
