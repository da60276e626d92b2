package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/undistract/focus/internal/config"
	"github.com/undistract/focus/internal/ui"
	"github.com/undistract/focus/pkg/shell"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tools and configuration",
	Long: `Check that the external collaborators are in place.

This command verifies:
  - The website blocker CLI
  - The analysis interpreter and script
  - Configuration file presence and validity
  - That the session log can be written`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	status  string // "ok", "warning", "error"
	message string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ui.Header("Focus Doctor")

	cfg := config.LoadOrDefault()
	hasErrors := false

	ui.SubHeader("System Information")
	ui.KeyValue("OS", runtime.GOOS)
	ui.KeyValue("Arch", runtime.GOARCH)
	ui.KeyValue("Focus", version)
	ui.NewLine()

	ui.SubHeader("External Tools")
	results := []checkResult{
		checkBlocker(cfg),
		checkAnalysis(cfg),
	}
	for _, r := range results {
		printCheckResult(r)
		if r.status == "error" {
			hasErrors = true
		}
	}

	ui.SubHeader("Configuration")
	checkConfig()

	ui.SubHeader("Session Log")
	if r := checkLogStore(cfg); r.status == "error" {
		hasErrors = true
		printCheckResult(r)
	} else {
		printCheckResult(r)
	}

	ui.NewLine()

	if hasErrors {
		ui.Error("Some checks failed.")
		return fmt.Errorf("doctor checks failed")
	}

	ui.Success("All checks passed!")
	return nil
}

func checkBlocker(cfg *config.Config) checkResult {
	if !shell.CommandExists(cfg.Blocker.Command) {
		// Not fatal: enforcement degrades to a no-op.
		return checkResult{
			name:    cfg.Blocker.Command,
			status:  "warning",
			message: "not installed; sessions will run without website blocking",
		}
	}
	return checkResult{
		name:    cfg.Blocker.Command,
		status:  "ok",
		message: fmt.Sprintf("found at %s", shell.Which(cfg.Blocker.Command)),
	}
}

func checkAnalysis(cfg *config.Config) checkResult {
	if !shell.CommandExists(cfg.Analysis.Command) {
		return checkResult{
			name:    cfg.Analysis.Command,
			status:  "warning",
			message: "not installed; the analysis sentinel will not work",
		}
	}

	script := config.ExpandHome(cfg.Analysis.Script)
	if script != "" {
		if _, err := os.Stat(script); err != nil {
			return checkResult{
				name:    cfg.Analysis.Command,
				status:  "warning",
				message: fmt.Sprintf("analysis script %s not found", script),
			}
		}
	}

	return checkResult{name: cfg.Analysis.Command, status: "ok"}
}

func checkLogStore(cfg *config.Config) checkResult {
	path := config.ExpandHome(cfg.Log.Path)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return checkResult{
			name:    "log store",
			status:  "error",
			message: fmt.Sprintf("cannot create %s: %v", dir, err),
		}
	}

	probe := filepath.Join(dir, ".focus-doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return checkResult{
			name:    "log store",
			status:  "error",
			message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	os.Remove(probe)

	return checkResult{
		name:    "log store",
		status:  "ok",
		message: path,
	}
}

func printCheckResult(r checkResult) {
	switch r.status {
	case "ok":
		msg := r.name
		if r.message != "" {
			msg += ui.Dim(" (" + r.message + ")")
		}
		ui.Success(msg)
	case "warning":
		ui.Warning(fmt.Sprintf("%s - %s", r.name, r.message))
	case "error":
		ui.Error(fmt.Sprintf("%s - %s", r.name, r.message))
	}
}

func checkConfig() {
	configPath, err := config.FindConfigFile()
	if err != nil {
		ui.Warning("No .focus.yaml found (using defaults)")
		ui.Info("  Run 'focus init' to create one")
		return
	}

	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		ui.Error(fmt.Sprintf("Failed to parse config: %v", err))
		return
	}

	ui.Success(fmt.Sprintf("Found config at %s", configPath))
	ui.KeyValue("Blocker profile", cfg.Blocker.Profile)
	ui.KeyValue("Default length", fmt.Sprintf("%d min", cfg.Session.DefaultMinutes))
	ui.KeyValue("Log store", config.ExpandHome(cfg.Log.Path))
}
