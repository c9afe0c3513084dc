package pending

import (
	"context"
	"time"
)

// StatusFunc reports the remote status string for one operation id.
type StatusFunc func(ctx context.Context, id string) (string, error)

// Watcher drives the notification channel: it polls the node for every
// operation still in Processing state and settles terminal outcomes on the
// tracker. It runs outside the cooperative dispatch flow and touches only
// the tracker.
type Watcher struct {
	tracker  *Tracker
	status   StatusFunc
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewWatcher(tracker *Tracker, status StatusFunc, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Watcher{tracker: tracker, status: status, interval: interval}
}

func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.loop(ctx)
}

func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll checks every Processing operation once. Transient status errors leave
// the operation pending for the next tick.
func (w *Watcher) Poll(ctx context.Context) {
	for _, id := range w.tracker.PendingIDs() {
		status, err := w.status(ctx, id)
		if err != nil {
			continue
		}
		switch status {
		case "Accepted":
			w.tracker.Settle(id, Accepted)
		case "Rejected", "Failed", "Dropped":
			w.tracker.Settle(id, Failed)
		}
	}
}
