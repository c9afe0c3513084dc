// Package pendingops registers the local context for inspecting submitted
// asynchronous operations.
package pendingops

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/pending"
)

const Context = "pending"

func Register(reg *command.Registry, tracker *pending.Tracker, journal *pending.Journal) error {
	reg.RegisterContext(Context, nil)

	list := command.NewDefinition(Context, "list", "List operations submitted this session", nil, nil)
	if err := reg.Register(list, func(ctx context.Context, inv command.Invocation) (any, error) {
		ops := tracker.List()
		if len(ops) == 0 {
			return "no pending operations", nil
		}
		var b strings.Builder
		for i, op := range ops {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s  %s  %s", op.ID, op.State, op.SubmittedAt.UTC().Format(time.RFC3339))
		}
		return b.String(), nil
	}); err != nil {
		return err
	}

	history := command.NewDefinition(Context, "history", "Show journaled operations from past sessions",
		nil,
		[]command.FieldSpec{
			{Name: "limit", Description: "rows to show", Type: command.BigInteger},
		})
	return reg.Register(history, func(ctx context.Context, inv command.Invocation) (any, error) {
		if journal == nil {
			return nil, fmt.Errorf("operation journal is disabled")
		}
		limit := 0
		if n := inv.BigIntArg("limit"); n != nil {
			limit = int(n.Int64())
		}
		entries, err := journal.History(limit)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return "no journaled operations", nil
		}
		var b strings.Builder
		for i, e := range entries {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s  %s  %s", e.ID, e.State, e.SubmittedAt.Format(time.RFC3339))
		}
		return b.String(), nil
	})
}
