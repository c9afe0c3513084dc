package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/complete"
	"github.com/avafoundry/ava-cli/internal/dispatch"
	clierr "github.com/avafoundry/ava-cli/internal/errors"
	"github.com/avafoundry/ava-cli/internal/node"
	"github.com/avafoundry/ava-cli/internal/pending"
	"github.com/avafoundry/ava-cli/internal/services/admin"
	"github.com/avafoundry/ava-cli/internal/services/avm"
	"github.com/avafoundry/ava-cli/internal/services/health"
	"github.com/avafoundry/ava-cli/internal/services/keystore"
	"github.com/avafoundry/ava-cli/internal/services/pendingops"
	"github.com/avafoundry/ava-cli/internal/services/platform"
)

// engine is one fully wired dispatch stack: node client, merged registry,
// session, tracker and watcher.
type engine struct {
	client     *node.Client
	registry   *command.Registry
	session    *dispatch.Session
	tracker    *pending.Tracker
	journal    *pending.Journal
	watcher    *pending.Watcher
	dispatcher *dispatch.Dispatcher
	completer  *complete.Provider
	log        *zap.Logger
}

// buildEngine constructs the registry from both sources. A duplicate or
// malformed definition is fatal here: the process must not start with an
// ambiguous registry.
func (s *runtimeState) buildEngine(w io.Writer) (*engine, error) {
	log := newLogger(s.settings.LogPath)
	client := node.New(s.settings.NodeURL, s.settings.Timeout, s.settings.Retries)
	registry := command.NewRegistry()
	session := dispatch.NewSession()
	tracker := pending.NewTracker()

	var journal *pending.Journal
	if s.settings.JournalEnabled {
		j, err := pending.OpenJournal(s.settings.JournalPath, s.settings.JournalLockPath)
		if err != nil {
			return nil, clierr.Wrap(clierr.CodeInternal, "open operation journal", err)
		}
		journal = j
		tracker.WithJournal(journal)
	}

	if err := registerAll(registry, client, session, tracker, journal); err != nil {
		return nil, err
	}

	fileDefs, err := command.LoadSpecDir(s.settings.SpecDir)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, "load command definitions", err)
	}
	for _, def := range fileDefs {
		if err := registry.AddFileDefinition(def); err != nil {
			return nil, err
		}
	}

	watcher := pending.NewWatcher(tracker, func(ctx context.Context, id string) (string, error) {
		reply, err := client.GetTxStatus(ctx, id)
		return reply.Status, err
	}, s.settings.PollInterval)

	dispatcher := dispatch.New(registry, session, tracker, w, log)
	dispatcher.SetAllowlist(s.settings.EnableCommands)

	return &engine{
		client:     client,
		registry:   registry,
		session:    session,
		tracker:    tracker,
		journal:    journal,
		watcher:    watcher,
		dispatcher: dispatcher,
		completer:  complete.New(registry, session, w),
		log:        log,
	}, nil
}

func registerAll(registry *command.Registry, client *node.Client, session *dispatch.Session, tracker *pending.Tracker, journal *pending.Journal) error {
	if err := avm.Register(registry, client); err != nil {
		return err
	}
	if err := keystore.Register(registry, client, session); err != nil {
		return err
	}
	if err := platform.Register(registry, client); err != nil {
		return err
	}
	if err := admin.Register(registry, client); err != nil {
		return err
	}
	if err := health.Register(registry, client); err != nil {
		return err
	}
	return pendingops.Register(registry, tracker, journal)
}

func (e *engine) Close() {
	e.client.Close()
	if e.journal != nil {
		_ = e.journal.Close()
	}
	_ = e.log.Sync()
}

// newLogger writes structured logs to the configured file; console output
// stays clean for the prompt. Logging problems never block the shell.
func newLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
