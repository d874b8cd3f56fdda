package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	recs := []Record{
		{Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), Scenario: "launch", TotalRuns: 10000, EntryFee: 10, ROI: -3.5, WinRate: 100, MeanPL: -0.35},
		{Timestamp: time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC), Scenario: "launch", TotalRuns: 5000, EntryFee: 12, ROI: 1.2, WinRate: 98.5, MeanPL: 0.14, Suggestions: 2},
	}
	for _, rec := range recs {
		if err := store.Append("default", rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Load("default")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load returned %d records, want 2", len(got))
	}
	if got[0].Scenario != "launch" || got[1].TotalRuns != 5000 {
		t.Errorf("records corrupted on round trip: %+v", got)
	}
}

func TestStore_MissingFileIsEmptyHistory(t *testing.T) {
	store := NewStore(t.TempDir())
	got, err := store.Load("nothing-here")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load of missing profile returned %d records", len(got))
	}
}

func TestStore_SkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if err := store.Append("p", Record{Scenario: "good"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "p.jsonl"), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := store.Append("p", Record{Scenario: "also good"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := store.Load("p")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load returned %d records, want 2 with the corrupt line skipped", len(got))
	}
}

func TestStore_Tail(t *testing.T) {
	store := NewStore(t.TempDir())
	for i := 0; i < 5; i++ {
		if err := store.Append("p", Record{TotalRuns: i}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Tail("p", 2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 2 || got[0].TotalRuns != 3 || got[1].TotalRuns != 4 {
		t.Errorf("Tail(2) = %+v, want the last two records", got)
	}

	all, err := store.Tail("p", 100)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Tail(100) returned %d records, want all 5", len(all))
	}
}
