package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/undistract/focus/internal/analysis"
	"github.com/undistract/focus/internal/blocklist"
	"github.com/undistract/focus/internal/config"
	"github.com/undistract/focus/internal/countdown"
	"github.com/undistract/focus/internal/lock"
	"github.com/undistract/focus/internal/logbook"
	"github.com/undistract/focus/internal/session"
	"github.com/undistract/focus/internal/ui"
	"github.com/undistract/focus/pkg/shell"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run focus sessions until interrupted",
	Long: `Run the focus-session loop: each cycle prompts for an intention,
a duration, and a list of sites to keep reachable, blocks everything
else for the length of the session, offers one extension, and records
a reflection. When a session finishes, the next one begins immediately.`,
	RunE: runStart,
}

var plainFlag bool

func init() {
	startCmd.Flags().BoolVar(&plainFlag, "plain", false, "use a plain countdown instead of the full-screen timer")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault()
	runner := shell.NewRunner()

	controller := session.NewController(
		session.Options{
			DefaultMinutes:   cfg.Session.DefaultMinutes,
			DurationCeiling:  cfg.Session.DurationCeiling,
			ExtensionCeiling: cfg.Session.ExtensionCeiling,
			FallbackMinutes:  cfg.Session.FallbackMinutes,
			DefaultSites:     cfg.Session.DefaultSites,
		},
		ui.NewEngine(cfg.PromptTimeout(), cfg.Prompt.MaxRetries),
		lock.New(config.ExpandHome(cfg.Lock.Path), config.ExpandHome(cfg.LockTimePath()), cfg.StaleAfter()),
		blocklist.New(cfg.Blocker.Command, cfg.Blocker.Profile, runner),
		logbook.NewWriter(config.ExpandHome(cfg.Log.Path)),
		analysis.New(cfg.Analysis.Command, config.ExpandHome(cfg.Analysis.Script), runner),
		countdown.NewWaiter(plainFlag),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ui.Header("Focus")

	// Each completed session flows straight into the next; the loop only
	// breaks on conditions that would repeat forever or need the user.
	for {
		err := controller.Run(ctx)
		switch {
		case err == nil:
			if ctx.Err() != nil {
				return nil
			}
			ui.Divider()

		case errors.Is(err, lock.ErrAlreadyRunning):
			ui.Error(err.Error())
			return err

		case errors.Is(err, logbook.ErrPersistence):
			// A write that failed once will fail again; do not loop on it.
			ui.Errorf("could not save the session: %v", err)
			return err

		case errors.Is(err, ui.ErrPromptExhausted):
			ui.Error("no response to the session prompts; giving up")
			return err

		case errors.Is(err, context.Canceled):
			ui.NewLine()
			ui.Info("Interrupted")
			return nil

		default:
			return err
		}
	}
}
