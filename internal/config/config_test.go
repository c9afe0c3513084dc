package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load(GlobalFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"), Retries: -1})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.NodeURL != "http://127.0.0.1:9650" {
		t.Fatalf("default node url wrong: %s", settings.NodeURL)
	}
	if settings.Timeout != 10*time.Second || settings.Retries != 2 {
		t.Fatalf("default timeout/retries wrong: %v %d", settings.Timeout, settings.Retries)
	}
	if !settings.JournalEnabled {
		t.Fatalf("journal should default to enabled")
	}
	if len(settings.EnableCommands) != 0 {
		t.Fatalf("allowlist should default empty: %v", settings.EnableCommands)
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
node_url: http://node.example:9650
timeout: 30s
retries: 5
poll_interval: 500ms
enable_commands:
  - avm
  - keystore.createUser
journal:
  enabled: false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	settings, err := Load(GlobalFlags{ConfigPath: path, Retries: -1})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.NodeURL != "http://node.example:9650" {
		t.Fatalf("node url not applied: %s", settings.NodeURL)
	}
	if settings.Timeout != 30*time.Second || settings.Retries != 5 {
		t.Fatalf("timeout/retries not applied: %v %d", settings.Timeout, settings.Retries)
	}
	if settings.PollInterval != 500*time.Millisecond {
		t.Fatalf("poll interval not applied: %v", settings.PollInterval)
	}
	if settings.JournalEnabled {
		t.Fatalf("journal.enabled not applied")
	}
	if len(settings.EnableCommands) != 2 || settings.EnableCommands[1] != "keystore.createUser" {
		t.Fatalf("enable_commands not applied: %v", settings.EnableCommands)
	}
}

func TestLoadFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("node_url: http://file.example:9650\ntimeout: 30s\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("AVA_NODE_URL", "http://env.example:9650")

	settings, err := Load(GlobalFlags{
		ConfigPath:     path,
		NodeURL:        "http://flag.example:9650",
		Timeout:        "5s",
		Retries:        0,
		EnableCommands: "avm, platform.getBlockchains ,",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.NodeURL != "http://flag.example:9650" {
		t.Fatalf("flag must beat env and file: %s", settings.NodeURL)
	}
	if settings.Timeout != 5*time.Second {
		t.Fatalf("flag timeout not applied: %v", settings.Timeout)
	}
	if settings.Retries != 0 {
		t.Fatalf("explicit zero retries not applied: %d", settings.Retries)
	}
	if len(settings.EnableCommands) != 2 || settings.EnableCommands[0] != "avm" || settings.EnableCommands[1] != "platform.getBlockchains" {
		t.Fatalf("comma list not split and trimmed: %v", settings.EnableCommands)
	}
}

func TestLoadEnvOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("retries: 9\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("AVA_RETRIES", "1")
	t.Setenv("AVA_NO_JOURNAL", "true")

	settings, err := Load(GlobalFlags{ConfigPath: path, Retries: -1})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.Retries != 1 {
		t.Fatalf("env must beat file: %d", settings.Retries)
	}
	if settings.JournalEnabled {
		t.Fatalf("AVA_NO_JOURNAL not applied")
	}
}

func TestLoadBadTimeoutFlag(t *testing.T) {
	_, err := Load(GlobalFlags{
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
		Timeout:    "soon",
		Retries:    -1,
	})
	if err == nil {
		t.Fatalf("expected error for malformed --timeout")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: [\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(GlobalFlags{ConfigPath: path, Retries: -1}); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
