package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/undistract/focus/internal/config"
	"github.com/undistract/focus/internal/logbook"
	"github.com/undistract/focus/internal/ui"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent focus sessions",
	Long: `Show the most recent sessions from the log store as a table,
newest last. Use -n to change how many rows are shown and --copy to
put the shown rows on the clipboard.`,
	RunE: runLog,
}

var (
	logCount int
	logCopy  bool
)

func init() {
	logCmd.Flags().IntVarP(&logCount, "count", "n", 10, "number of sessions to show")
	logCmd.Flags().BoolVar(&logCopy, "copy", false, "copy the shown sessions to the clipboard")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault()

	records, err := logbook.ReadAll(config.ExpandHome(cfg.Log.Path))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ui.Info("No sessions logged yet. Run 'focus start' to begin one.")
		return nil
	}

	if logCount > 0 && len(records) > logCount {
		records = records[len(records)-logCount:]
	}

	table := ui.NewTable([]string{"Start", "Min", "Intent", "Done", "Learned"})
	for _, rec := range records {
		table.AddRow([]string{
			rec.Start.Format("Jan 02 15:04"),
			strconv.Itoa(rec.Minutes),
			truncate(rec.Intent, 40),
			truncate(rec.Done, 30),
			truncate(rec.Learned, 30),
		})
	}
	table.Render()

	if logCopy {
		var b strings.Builder
		for _, rec := range records {
			fmt.Fprintf(&b, "%s\t%d min\t%s\t%s\t%s\n",
				rec.Start.Format(logbook.TimeLayout), rec.Minutes, rec.Intent, rec.Done, rec.Learned)
		}
		if err := clipboard.WriteAll(b.String()); err != nil {
			ui.Warningf("could not copy to clipboard: %v", err)
		} else {
			ui.Successf("Copied %d sessions to clipboard", len(records))
		}
	}

	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
