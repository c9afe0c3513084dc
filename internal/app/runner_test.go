package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/avafoundry/ava-cli/internal/version"
)

func testRunner(t *testing.T) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	return NewRunnerWithWriters(&stdout, &stderr), &stdout, &stderr
}

func TestRunVersion(t *testing.T) {
	r, stdout, _ := testRunner(t)
	if code := r.Run([]string{"version"}); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), version.CLIVersion) {
		t.Fatalf("version not printed:\n%s", stdout.String())
	}
}

func TestRunVersionLong(t *testing.T) {
	r, stdout, _ := testRunner(t)
	if code := r.Run([]string{"version", "--long"}); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "commit") {
		t.Fatalf("long version not printed:\n%s", stdout.String())
	}
}

func TestRunUnknownFlag(t *testing.T) {
	r, _, stderr := testRunner(t)
	if code := r.Run([]string{"--bogus"}); code == 0 {
		t.Fatalf("unknown flag must fail")
	}
	if !strings.Contains(stderr.String(), "parse flags") {
		t.Fatalf("flag error not reported:\n%s", stderr.String())
	}
}

func TestRunCommandsDumpsRegistry(t *testing.T) {
	r, stdout, stderr := testRunner(t)
	if code := r.Run([]string{"commands", "--no-journal"}); code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr.String())
	}

	var dump struct {
		Flags    []struct{ Name string } `json:"flags"`
		Contexts []struct {
			Name     string `json:"name"`
			Commands []struct {
				Name string `json:"name"`
			} `json:"commands"`
		} `json:"contexts"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &dump); err != nil {
		t.Fatalf("output not JSON: %v\n%s", err, stdout.String())
	}

	byName := make(map[string][]string)
	for _, c := range dump.Contexts {
		for _, cmd := range c.Commands {
			byName[c.Name] = append(byName[c.Name], cmd.Name)
		}
	}
	for _, want := range []string{"avm", "keystore", "platform", "admin", "health", "pending"} {
		if len(byName[want]) == 0 {
			t.Fatalf("context %s missing from dump: %v", want, byName)
		}
	}
	found := false
	for _, name := range byName["avm"] {
		if name == "send" {
			found = true
		}
	}
	if !found {
		t.Fatalf("avm.send missing from dump: %v", byName["avm"])
	}
	if len(dump.Flags) == 0 {
		t.Fatalf("persistent flags missing from dump")
	}
}

func TestRunSingleLine(t *testing.T) {
	r, stdout, stderr := testRunner(t)
	if code := r.Run([]string{"run", "--no-journal", "pending", "list"}); code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "no pending operations") {
		t.Fatalf("dispatch output missing:\n%s", stdout.String())
	}
}

func TestRunSingleLineSpecDir(t *testing.T) {
	r, _, stderr := testRunner(t)
	code := r.Run([]string{"run", "--no-journal", "--spec-dir", t.TempDir(), "pending", "list"})
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr.String())
	}
}
