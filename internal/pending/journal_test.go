package pending

import (
	"path/filepath"
	"testing"
	"time"
)

func TestJournalRecordAndHistory(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenJournal(filepath.Join(dir, "operations.db"), filepath.Join(dir, "operations.lock"))
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	submitted := time.Unix(1700000000, 0).UTC()
	op := Operation{ID: "op-1", SubmittedAt: submitted, State: Processing}
	if err := j.Record(op); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	op.State = Accepted
	if err := j.Record(op); err != nil {
		t.Fatalf("Record update failed: %v", err)
	}

	entries, err := j.History(10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("upsert produced %d rows", len(entries))
	}
	if entries[0].ID != "op-1" || entries[0].State != "Accepted" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if !entries[0].SubmittedAt.Equal(submitted) {
		t.Fatalf("submitted at %v, want %v", entries[0].SubmittedAt, submitted)
	}
}

func TestJournalRecordMissingID(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenJournal(filepath.Join(dir, "operations.db"), filepath.Join(dir, "operations.lock"))
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	if err := j.Record(Operation{}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestTrackerMirrorsIntoJournal(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenJournal(filepath.Join(dir, "operations.db"), filepath.Join(dir, "operations.lock"))
	if err != nil {
		t.Fatalf("OpenJournal failed: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	tr := NewTracker().WithJournal(j)
	tr.Add("op-1")
	tr.Settle("op-1", Failed)

	entries, err := j.History(10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 1 || entries[0].State != "Failed" {
		t.Fatalf("journal did not mirror settlement: %+v", entries)
	}
}
