// Package pending tracks asynchronously submitted node operations and
// notifies the front end when one settles.
package pending

import (
	"sync"
	"time"
)

type State int

const (
	Processing State = iota
	Accepted
	Failed
)

func (s State) String() string {
	switch s {
	case Processing:
		return "Processing"
	case Accepted:
		return "Accepted"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Operation is one submitted remote action. It lives for the session; there
// is no removal path.
type Operation struct {
	ID          string
	SubmittedAt time.Time
	State       State
}

// Tracker records operation ids in insertion order. Add and List run on the
// dispatch flow; Settle arrives from the watcher goroutine, so access is
// mutex-guarded.
type Tracker struct {
	mu       sync.Mutex
	order    []string
	ops      map[string]*Operation
	callback func(id string, state State)
	now      func() time.Time
	journal  *Journal
}

func NewTracker() *Tracker {
	return &Tracker{
		ops: make(map[string]*Operation),
		now: time.Now,
	}
}

// WithJournal attaches a persistent journal; every Add and Settle is
// mirrored there. Journal write failures are ignored: the in-memory tracker
// is the source of truth for the session.
func (t *Tracker) WithJournal(j *Journal) *Tracker {
	t.journal = j
	return t
}

// WithClock overrides the timestamp source.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Add inserts a new operation in Processing state. Re-adding a known id is a
// no-op.
func (t *Tracker) Add(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.ops[id]; ok {
		return
	}
	op := &Operation{ID: id, SubmittedAt: t.now(), State: Processing}
	t.ops[id] = op
	t.order = append(t.order, id)
	if t.journal != nil {
		_ = t.journal.Record(*op)
	}
}

// List returns all operations in insertion order.
func (t *Tracker) List() []Operation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Operation, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.ops[id])
	}
	return out
}

// PendingIDs returns the ids still in Processing state, insertion order.
func (t *Tracker) PendingIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.order))
	for _, id := range t.order {
		if t.ops[id].State == Processing {
			out = append(out, id)
		}
	}
	return out
}

// SetCallback registers the single notification sink. Re-registration
// replaces the previous sink; there is no fan-out.
func (t *Tracker) SetCallback(fn func(id string, state State)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callback = fn
}

// Settle moves an operation to a terminal state and fires the callback. An
// unknown id or an already-settled operation is ignored, so the callback
// fires at most once per id.
func (t *Tracker) Settle(id string, state State) {
	t.mu.Lock()
	op, ok := t.ops[id]
	if !ok || op.State != Processing || state == Processing {
		t.mu.Unlock()
		return
	}
	op.State = state
	cb := t.callback
	if t.journal != nil {
		_ = t.journal.Record(*op)
	}
	t.mu.Unlock()

	if cb != nil {
		cb(id, state)
	}
}
