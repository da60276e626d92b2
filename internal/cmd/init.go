package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/undistract/focus/internal/config"
	"github.com/undistract/focus/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .focus.yaml configuration file",
	Long: `Create a .focus.yaml in your home directory, pre-filled with
defaults and a few answers you give interactively. Pass --force to
overwrite an existing file.`,
	RunE: runInit,
}

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ui.Header("Focus Init")

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to locate home directory: %w", err)
	}
	configPath := filepath.Join(home, config.ConfigFilename)

	if _, err := os.Stat(configPath); err == nil && !initForce {
		ui.Warningf("%s already exists", configPath)
		overwrite, err := ui.PromptYesNo("Overwrite it", false)
		if err != nil {
			return err
		}
		if !overwrite {
			ui.Info("Keeping the existing config")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	minutes, err := ui.PromptString("Default session length (minutes)", strconv.Itoa(cfg.Session.DefaultMinutes))
	if err != nil {
		return err
	}
	if n, convErr := strconv.Atoi(strings.TrimSpace(minutes)); convErr == nil && n > 0 {
		cfg.Session.DefaultMinutes = n
	}

	sites, err := ui.PromptString("Default allowed sites (comma separated)", strings.Join(cfg.Session.DefaultSites, ","))
	if err != nil {
		return err
	}
	if trimmed := strings.TrimSpace(sites); trimmed != "" {
		var list []string
		for _, s := range strings.Split(trimmed, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		cfg.Session.DefaultSites = list
	}

	profile, err := ui.PromptString("Blocker profile name", cfg.Blocker.Profile)
	if err != nil {
		return err
	}
	if trimmed := strings.TrimSpace(profile); trimmed != "" {
		cfg.Blocker.Profile = trimmed
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	header := "# focus configuration\n# See 'focus doctor' to verify external tools.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	ui.NewLine()
	ui.Successf("Wrote %s", configPath)
	ui.Info("Run 'focus doctor' to verify external tools, then 'focus start'")
	return nil
}
