package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestInsertAndListAnalysisRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer db.Close()

	id, err := InsertAnalysisRun(db, AnalysisRun{
		Intent: IntentToday, Provider: ProviderGemini,
		Total: 10, Matched: 3, Removed: 6, Pending: 1, Dropped: 0,
		Summary: "三場會議", DurationMS: 1234,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero run id")
	}

	if _, err := InsertAnalysisRun(db, AnalysisRun{Intent: IntentRecent, Provider: ProviderOpenAI, Total: 5, Matched: 1, Removed: 4}); err != nil {
		t.Fatalf("second insert failed: %v", err)
	}

	runs, err := RecentAnalysisRuns(db, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].Intent != IntentRecent || runs[1].Intent != IntentToday {
		t.Fatalf("run order wrong: %+v", runs)
	}
	if runs[1].Summary != "三場會議" || runs[1].DurationMS != 1234 {
		t.Fatalf("run fields wrong: %+v", runs[1])
	}
}

func TestRecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.db")
	db, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer db.Close()

	result := &RunResult{
		Matched:        []AcceptedItem{{Message: Message{ID: "m1"}}},
		Removed:        []RejectedItem{{Message: Message{ID: "m2"}}, {Message: Message{ID: "m3"}}},
		Pending:        nil,
		Summary:        "done",
		DroppedOnError: 1,
	}
	req := AnalysisRequest{Intent: IntentUnread, Provider: ProviderAnthropic}

	if _, err := RecordRun(db, req, result, 4, 2*time.Second); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := RecentAnalysisRuns(db, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	run := runs[0]
	if run.Total != 4 || run.Matched != 1 || run.Removed != 2 || run.Pending != 0 || run.Dropped != 1 {
		t.Fatalf("recorded counts wrong: %+v", run)
	}
	if run.DurationMS != 2000 {
		t.Fatalf("expected 2000ms, got %d", run.DurationMS)
	}
}
