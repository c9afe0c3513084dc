package complete

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/dispatch"
)

func testProvider(t *testing.T) (*Provider, *dispatch.Session, *bytes.Buffer) {
	t.Helper()
	reg := command.NewRegistry()
	handler := func(ctx context.Context, inv command.Invocation) (any, error) { return nil, nil }
	reg.RegisterContext("avm", nil)
	reg.RegisterContext("admin", nil)
	reg.RegisterContext("keystore", nil)
	for _, name := range []string{"send", "getBalance", "getTxStatus", "createAddress"} {
		if err := reg.Register(command.NewDefinition("avm", name, "", nil, nil), handler); err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
	}
	if err := reg.Register(command.NewDefinition("admin", "getNodeID", "", nil, nil), handler); err != nil {
		t.Fatalf("Register getNodeID failed: %v", err)
	}

	sess := dispatch.NewSession()
	var buf bytes.Buffer
	return New(reg, sess, &buf), sess, &buf
}

func TestCompleteTopLevelEnumeration(t *testing.T) {
	p, _, _ := testProvider(t)
	candidates, fragment := p.Complete("")
	if fragment != "" {
		t.Fatalf("unexpected fragment %q", fragment)
	}
	want := []string{"avm ", "admin ", "keystore ", "exit"}
	if len(candidates) != len(want) {
		t.Fatalf("candidates = %v, want %v", candidates, want)
	}
	for i := range want {
		if candidates[i] != want[i] {
			t.Fatalf("candidates[%d] = %q, want %q (registration order expected)", i, candidates[i], want[i])
		}
	}
}

func TestCompleteContextPrefix(t *testing.T) {
	p, _, _ := testProvider(t)
	candidates, fragment := p.Complete("a")
	if fragment != "a" {
		t.Fatalf("fragment = %q, want a", fragment)
	}
	want := []string{"admin ", "avm "}
	if len(candidates) != len(want) || candidates[0] != want[0] || candidates[1] != want[1] {
		t.Fatalf("prefix candidates not sorted: %v", candidates)
	}

	candidates, _ = p.Complete("av")
	if len(candidates) != 1 || candidates[0] != "avm " {
		t.Fatalf("expected the space-suffixed context candidate, got %v", candidates)
	}
}

func TestCompleteExactContextFallsThrough(t *testing.T) {
	p, _, _ := testProvider(t)
	candidates, _ := p.Complete("avm")
	want := []string{"send", "getBalance", "getTxStatus", "createAddress"}
	if len(candidates) != len(want) {
		t.Fatalf("candidates = %v, want %v", candidates, want)
	}
	for i := range want {
		if candidates[i] != want[i] {
			t.Fatalf("fall-through order wrong: %v", candidates)
		}
	}
}

func TestCompleteMethodPrefix(t *testing.T) {
	p, _, _ := testProvider(t)
	candidates, fragment := p.Complete("avm get")
	if fragment != "get" {
		t.Fatalf("fragment = %q, want get", fragment)
	}
	want := []string{"getBalance", "getTxStatus"}
	if len(candidates) != len(want) || candidates[0] != want[0] || candidates[1] != want[1] {
		t.Fatalf("method candidates wrong: %v", candidates)
	}
	if !sort.StringsAreSorted(candidates) {
		t.Fatalf("filtered candidates must be sorted: %v", candidates)
	}
}

func TestCompleteKnownCommandPrintsUsage(t *testing.T) {
	p, _, buf := testProvider(t)
	candidates, fragment := p.Complete("avm send")
	if candidates != nil || fragment != "" {
		t.Fatalf("expected no candidates for a fully typed command, got %v", candidates)
	}
	if !strings.Contains(buf.String(), "avm send") {
		t.Fatalf("usage not printed:\n%s", buf.String())
	}
}

func TestCompleteActiveContext(t *testing.T) {
	p, sess, _ := testProvider(t)
	sess.EnterContext("avm")

	candidates, _ := p.Complete("")
	if len(candidates) != 4 || candidates[0] != "send" {
		t.Fatalf("active-context enumeration wrong: %v", candidates)
	}

	candidates, fragment := p.Complete("cr")
	if fragment != "cr" {
		t.Fatalf("fragment = %q", fragment)
	}
	if len(candidates) != 1 || candidates[0] != "createAddress" {
		t.Fatalf("active-context prefix wrong: %v", candidates)
	}

	candidates, _ = p.Complete("send 100")
	if candidates != nil {
		t.Fatalf("nested completion should yield nothing, got %v", candidates)
	}
}

func TestReadlineAdapter(t *testing.T) {
	p, _, _ := testProvider(t)
	rl := NewReadline(p)
	line := []rune("a")
	newLine, length := rl.Do(line, len(line))
	if length != 1 {
		t.Fatalf("length = %d, want the fragment length 1", length)
	}
	var got []string
	for _, r := range newLine {
		got = append(got, string(r))
	}
	want := []string{"dmin ", "vm "}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("suffixes = %v, want %v", got, want)
	}
}
