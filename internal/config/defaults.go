package config

// DefaultConfig returns the default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			DefaultMinutes:   25,
			DurationCeiling:  60,
			ExtensionCeiling: 30,
			FallbackMinutes:  5,
			DefaultSites:     []string{"mail.google.com", "calendar.google.com"},
		},
		Blocker: BlockerConfig{
			Command: "selfcontrol-cli",
			Profile: "focus",
		},
		Analysis: AnalysisConfig{
			Command: "python3",
			Script:  "~/.focus/show_analysis.py",
		},
		Prompt: PromptConfig{
			TimeoutSeconds: 90,
			MaxRetries:     960,
		},
		Lock: LockConfig{
			Path:            "~/.focus/focus.lock",
			StaleAfterHours: 6,
		},
		Log: LogConfig{
			Path: "~/.focus/logs.csv",
		},
	}
}

// MergeWithDefaults merges a loaded config with defaults for any missing values.
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Session defaults
	if cfg.Session.DefaultMinutes == 0 {
		cfg.Session.DefaultMinutes = defaults.Session.DefaultMinutes
	}
	if cfg.Session.DurationCeiling == 0 {
		cfg.Session.DurationCeiling = defaults.Session.DurationCeiling
	}
	if cfg.Session.ExtensionCeiling == 0 {
		cfg.Session.ExtensionCeiling = defaults.Session.ExtensionCeiling
	}
	if cfg.Session.FallbackMinutes == 0 {
		cfg.Session.FallbackMinutes = defaults.Session.FallbackMinutes
	}
	if len(cfg.Session.DefaultSites) == 0 {
		cfg.Session.DefaultSites = defaults.Session.DefaultSites
	}

	// Blocker defaults
	if cfg.Blocker.Command == "" {
		cfg.Blocker.Command = defaults.Blocker.Command
	}
	if cfg.Blocker.Profile == "" {
		cfg.Blocker.Profile = defaults.Blocker.Profile
	}

	// Analysis defaults
	if cfg.Analysis.Command == "" {
		cfg.Analysis.Command = defaults.Analysis.Command
	}
	if cfg.Analysis.Script == "" {
		cfg.Analysis.Script = defaults.Analysis.Script
	}

	// Prompt defaults
	if cfg.Prompt.TimeoutSeconds == 0 {
		cfg.Prompt.TimeoutSeconds = defaults.Prompt.TimeoutSeconds
	}
	if cfg.Prompt.MaxRetries == 0 {
		cfg.Prompt.MaxRetries = defaults.Prompt.MaxRetries
	}

	// Lock defaults
	if cfg.Lock.Path == "" {
		cfg.Lock.Path = defaults.Lock.Path
	}
	if cfg.Lock.StaleAfterHours == 0 {
		cfg.Lock.StaleAfterHours = defaults.Lock.StaleAfterHours
	}

	// Log defaults
	if cfg.Log.Path == "" {
		cfg.Log.Path = defaults.Log.Path
	}

	return cfg
}
