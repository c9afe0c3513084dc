// Package shell runs the interactive read-eval loop on top of readline.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/avafoundry/ava-cli/internal/complete"
	"github.com/avafoundry/ava-cli/internal/dispatch"
	"github.com/avafoundry/ava-cli/internal/pending"
	"github.com/avafoundry/ava-cli/internal/version"
)

type Config struct {
	HistoryFile string
}

type Shell struct {
	dispatcher *dispatch.Dispatcher
	completer  *complete.Provider
	tracker    *pending.Tracker
	cfg        Config
}

// New wires the shell. The completion provider is built here so its usage
// side effects go through the prompt-safe writer.
func New(dispatcher *dispatch.Dispatcher, completer *complete.Provider, tracker *pending.Tracker, cfg Config) *Shell {
	return &Shell{dispatcher: dispatcher, completer: completer, tracker: tracker, cfg: cfg}
}

// PromptWriter lets the dispatcher and completion provider print through
// readline's prompt-aware stdout, which only exists once the instance is
// created inside Run. Before that it falls through to stdout.
type PromptWriter struct {
	w io.Writer
}

func (p *PromptWriter) Write(b []byte) (int, error) {
	if p.w == nil {
		return os.Stdout.Write(b)
	}
	return p.w.Write(b)
}

// NewPromptWriter returns the writer to wire into components built before
// the readline instance.
func NewPromptWriter() *PromptWriter {
	return &PromptWriter{}
}

// Run blocks on the read-eval loop until the user exits. One line is
// dispatched at a time; the pending-operation callback interrupts the prompt
// through readline's stdout and the prompt redraws.
func (s *Shell) Run(ctx context.Context, pw *PromptWriter) error {
	if dir := filepath.Dir(s.cfg.HistoryFile); dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     s.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    complete.NewReadline(s.completer),
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()
	pw.w = rl.Stdout()

	s.tracker.SetCallback(func(id string, state pending.State) {
		fmt.Fprintf(rl.Stdout(), "operation %s settled: %s\n", id, state)
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := s.dispatcher.Handle(ctx, line); err != nil {
			if errors.Is(err, dispatch.ErrExitSession) {
				return nil
			}
			return err
		}
	}
}

func (s *Shell) prompt() string {
	if active := s.dispatcher.Session().ActiveContext(); active != "" {
		return fmt.Sprintf("%s [%s]> ", version.CLIName, active)
	}
	return version.CLIName + "> "
}
