package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/undistract/focus/internal/config"
	"github.com/undistract/focus/internal/logbook"
	"github.com/undistract/focus/internal/report"
	"github.com/undistract/focus/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the session log",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault()

	records, err := logbook.ReadAll(config.ExpandHome(cfg.Log.Path))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ui.Info("No sessions logged yet. Run 'focus start' to begin one.")
		return nil
	}

	s := report.Summarize(records)

	ui.Header("Focus Stats")
	ui.KeyValue("Sessions", strconv.Itoa(s.TotalSessions))
	ui.KeyValue("Total time", fmt.Sprintf("%d min (%.1f h)", s.TotalMinutes, float64(s.TotalMinutes)/60))
	ui.KeyValue("Average", fmt.Sprintf("%.1f min", s.AvgMinutes))
	ui.KeyValue("Longest", fmt.Sprintf("%d min", s.MaxMinutes))
	ui.KeyValue("Recent average", fmt.Sprintf("%.1f min (last 10)", s.RecentAvg))
	ui.KeyValue("Best day", s.BestWeekday.String())
	ui.KeyValue("Best hour", fmt.Sprintf("%d:00", s.BestHour))

	ui.SubHeader("Sessions by weekday")
	table := ui.NewTable([]string{"Day", "Sessions", "Minutes"})
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if s.SessionsByWeekday[wd] == 0 {
			continue
		}
		table.AddRow([]string{
			wd.String(),
			strconv.Itoa(s.SessionsByWeekday[wd]),
			strconv.Itoa(s.MinutesByWeekday[wd]),
		})
	}
	table.Render()

	if keywords := report.TopKeywords(records, 5); len(keywords) > 0 {
		ui.SubHeader("Top intention keywords")
		for i, kw := range keywords {
			ui.NumberedList(i+1, fmt.Sprintf("%s (%d)", kw.Word, kw.Count))
		}
	}

	return nil
}
