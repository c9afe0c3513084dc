package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(CodeUnavailable, "dial node", cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("cause not reachable through Unwrap")
	}
	if err.Error() != "dial node: connection refused" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("nil error exit code = %d", got)
	}
	if got := ExitCode(New(CodeUsage, "bad flag")); got != 2 {
		t.Fatalf("usage exit code = %d", got)
	}
	if got := ExitCode(stderrors.New("plain")); got != 1 {
		t.Fatalf("untyped exit code = %d", got)
	}
	wrapped := fmt.Errorf("outer: %w", UnknownContext("bogus"))
	if got := ExitCode(wrapped); got != int(CodeUnknownContext) {
		t.Fatalf("wrapped exit code = %d", got)
	}
}

func TestIs(t *testing.T) {
	err := InsufficientArguments(3, 1)
	if !Is(err, CodeInsufficient) {
		t.Fatalf("Is missed the code")
	}
	if Is(err, CodeInvalidField) {
		t.Fatalf("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), CodeInternal) {
		t.Fatalf("untyped error must not match any code")
	}
}

func TestConstructorMessages(t *testing.T) {
	if got := UnknownMethod("avm", "bogus").Error(); got != `unknown method "bogus" in context "avm"` {
		t.Fatalf("message = %q", got)
	}
	if got := DuplicateCommand("avm", "send").Error(); got != "duplicate command avm.send" {
		t.Fatalf("message = %q", got)
	}
}
