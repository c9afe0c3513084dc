package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type GlobalFlags struct {
	ConfigPath     string
	NodeURL        string
	Timeout        string
	Retries        int
	SpecDir        string
	NoJournal      bool
	PollInterval   string
	EnableCommands string
}

type Settings struct {
	NodeURL         string
	Timeout         time.Duration
	Retries         int
	SpecDir         string
	HistoryFile     string
	JournalEnabled  bool
	JournalPath     string
	JournalLockPath string
	LogPath         string
	PollInterval    time.Duration
	EnableCommands  []string
}

type fileConfig struct {
	NodeURL        string   `yaml:"node_url"`
	Timeout        string   `yaml:"timeout"`
	Retries        *int     `yaml:"retries"`
	SpecDir        string   `yaml:"spec_dir"`
	HistoryFile    string   `yaml:"history_file"`
	LogPath        string   `yaml:"log_path"`
	PollInterval   string   `yaml:"poll_interval"`
	EnableCommands []string `yaml:"enable_commands"`
	Journal        struct {
		Enabled  *bool  `yaml:"enabled"`
		Path     string `yaml:"path"`
		LockPath string `yaml:"lock_path"`
	} `yaml:"journal"`
}

// Load resolves settings from defaults, then the YAML config file, then
// environment variables, then flags, in increasing precedence.
func Load(flags GlobalFlags) (Settings, error) {
	settings, err := defaultSettings()
	if err != nil {
		return Settings{}, err
	}

	cfgPath, err := resolveConfigPath(flags.ConfigPath)
	if err != nil {
		return Settings{}, err
	}

	if err := applyFileConfig(cfgPath, &settings); err != nil {
		return Settings{}, err
	}

	applyEnv(&settings)

	if err := applyFlags(flags, &settings); err != nil {
		return Settings{}, err
	}

	if settings.Timeout <= 0 {
		settings.Timeout = 10 * time.Second
	}
	if settings.Retries < 0 {
		settings.Retries = 0
	}
	if settings.PollInterval <= 0 {
		settings.PollInterval = 2 * time.Second
	}

	return settings, nil
}

func defaultSettings() (Settings, error) {
	cacheDir, err := defaultCacheDir()
	if err != nil {
		return Settings{}, err
	}
	configDir, err := defaultConfigDir()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		NodeURL:         "http://127.0.0.1:9650",
		Timeout:         10 * time.Second,
		Retries:         2,
		SpecDir:         filepath.Join(configDir, "specs"),
		HistoryFile:     filepath.Join(cacheDir, "history"),
		JournalEnabled:  true,
		JournalPath:     filepath.Join(cacheDir, "operations.db"),
		JournalLockPath: filepath.Join(cacheDir, "operations.lock"),
		LogPath:         filepath.Join(cacheDir, "ava.log"),
		PollInterval:    2 * time.Second,
	}, nil
}

func defaultConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "ava"), nil
}

func defaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "ava"), nil
}

func resolveConfigPath(input string) (string, error) {
	if strings.TrimSpace(input) != "" {
		return input, nil
	}
	dir, err := defaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func applyFileConfig(path string, settings *Settings) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}

	if cfg.NodeURL != "" {
		settings.NodeURL = cfg.NodeURL
	}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		settings.Timeout = d
	}
	if cfg.Retries != nil {
		settings.Retries = *cfg.Retries
	}
	if cfg.SpecDir != "" {
		settings.SpecDir = cfg.SpecDir
	}
	if cfg.HistoryFile != "" {
		settings.HistoryFile = cfg.HistoryFile
	}
	if cfg.LogPath != "" {
		settings.LogPath = cfg.LogPath
	}
	if cfg.PollInterval != "" {
		d, err := time.ParseDuration(cfg.PollInterval)
		if err != nil {
			return fmt.Errorf("config poll_interval: %w", err)
		}
		settings.PollInterval = d
	}
	if len(cfg.EnableCommands) > 0 {
		settings.EnableCommands = cfg.EnableCommands
	}
	if cfg.Journal.Enabled != nil {
		settings.JournalEnabled = *cfg.Journal.Enabled
	}
	if cfg.Journal.Path != "" {
		settings.JournalPath = cfg.Journal.Path
	}
	if cfg.Journal.LockPath != "" {
		settings.JournalLockPath = cfg.Journal.LockPath
	}

	return nil
}

func applyEnv(settings *Settings) {
	if v := os.Getenv("AVA_NODE_URL"); v != "" {
		settings.NodeURL = v
	}
	if v := os.Getenv("AVA_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			settings.Timeout = d
		}
	}
	if v := os.Getenv("AVA_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			settings.Retries = n
		}
	}
	if v := os.Getenv("AVA_SPEC_DIR"); v != "" {
		settings.SpecDir = v
	}
	if v := os.Getenv("AVA_HISTORY_FILE"); v != "" {
		settings.HistoryFile = v
	}
	if v := os.Getenv("AVA_LOG_PATH"); v != "" {
		settings.LogPath = v
	}
	if v := os.Getenv("AVA_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			settings.PollInterval = d
		}
	}
	if v := os.Getenv("AVA_ENABLE_COMMANDS"); v != "" {
		settings.EnableCommands = splitList(v)
	}
	if v := os.Getenv("AVA_NO_JOURNAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			settings.JournalEnabled = !b
		}
	}
	if v := os.Getenv("AVA_JOURNAL_PATH"); v != "" {
		settings.JournalPath = v
	}
	if v := os.Getenv("AVA_JOURNAL_LOCK_PATH"); v != "" {
		settings.JournalLockPath = v
	}
}

func applyFlags(flags GlobalFlags, settings *Settings) error {
	if strings.TrimSpace(flags.NodeURL) != "" {
		settings.NodeURL = strings.TrimSpace(flags.NodeURL)
	}
	if flags.Timeout != "" {
		d, err := time.ParseDuration(flags.Timeout)
		if err != nil {
			return fmt.Errorf("parse --timeout: %w", err)
		}
		settings.Timeout = d
	}
	if flags.Retries >= 0 {
		settings.Retries = flags.Retries
	}
	if strings.TrimSpace(flags.SpecDir) != "" {
		settings.SpecDir = flags.SpecDir
	}
	if flags.PollInterval != "" {
		d, err := time.ParseDuration(flags.PollInterval)
		if err != nil {
			return fmt.Errorf("parse --poll-interval: %w", err)
		}
		settings.PollInterval = d
	}
	if flags.NoJournal {
		settings.JournalEnabled = false
	}
	if strings.TrimSpace(flags.EnableCommands) != "" {
		settings.EnableCommands = splitList(flags.EnableCommands)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
