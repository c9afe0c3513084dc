package pending

import (
	"testing"
	"time"
)

func TestTrackerInsertionOrderAndIdempotentAdd(t *testing.T) {
	tr := NewTracker()
	tr.Add("op-b")
	tr.Add("op-a")
	tr.Add("op-b")

	ops := tr.List()
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}
	if ops[0].ID != "op-b" || ops[1].ID != "op-a" {
		t.Fatalf("insertion order not preserved: %v", ops)
	}
	for _, op := range ops {
		if op.State != Processing {
			t.Fatalf("new operation not Processing: %v", op)
		}
	}
}

func TestTrackerSettleFiresCallbackOnce(t *testing.T) {
	tr := NewTracker()
	tr.Add("op-1")

	var fired []State
	tr.SetCallback(func(id string, state State) {
		if id != "op-1" {
			t.Fatalf("callback for unexpected id %q", id)
		}
		fired = append(fired, state)
	})

	tr.Settle("op-1", Accepted)
	tr.Settle("op-1", Failed)
	tr.Settle("op-unknown", Accepted)

	if len(fired) != 1 || fired[0] != Accepted {
		t.Fatalf("callback fired %v times with %v", len(fired), fired)
	}
	ops := tr.List()
	if ops[0].State != Accepted {
		t.Fatalf("settled state overwritten: %v", ops[0].State)
	}
	if ids := tr.PendingIDs(); len(ids) != 0 {
		t.Fatalf("settled operation still pending: %v", ids)
	}
}

func TestTrackerSettleToProcessingIgnored(t *testing.T) {
	tr := NewTracker()
	tr.Add("op-1")
	tr.Settle("op-1", Processing)
	if ids := tr.PendingIDs(); len(ids) != 1 {
		t.Fatalf("Processing is not a terminal state: %v", ids)
	}
}

func TestTrackerCallbackReplacement(t *testing.T) {
	tr := NewTracker()
	tr.Add("op-1")
	first, second := 0, 0
	tr.SetCallback(func(id string, state State) { first++ })
	tr.SetCallback(func(id string, state State) { second++ })
	tr.Settle("op-1", Failed)
	if first != 0 || second != 1 {
		t.Fatalf("re-registration must replace the sink: first=%d second=%d", first, second)
	}
}

func TestTrackerClockTimestamps(t *testing.T) {
	fixed := time.Unix(1700000000, 0).UTC()
	tr := NewTracker().WithClock(func() time.Time { return fixed })
	tr.Add("op-1")
	if got := tr.List()[0].SubmittedAt; !got.Equal(fixed) {
		t.Fatalf("submitted at %v, want %v", got, fixed)
	}
}

func TestStateString(t *testing.T) {
	if Processing.String() != "Processing" || Accepted.String() != "Accepted" || Failed.String() != "Failed" {
		t.Fatalf("state names wrong")
	}
}
