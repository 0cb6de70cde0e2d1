package journal_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"galleryorganizer/internal/journal"
	"galleryorganizer/internal/services"
)

func openJournal(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openJournal(t)

	run, err := store.BeginRun(ctx, "galleries_tags", "plugin")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if len(run.ID()) != 36 {
		t.Fatalf("expected uuid run id, got %q", run.ID())
	}
	if err := run.RecordEvent(ctx, "galleries_title", "7", services.ActionUpdated, "title=Set A"); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}
	if err := run.RecordEvent(ctx, "galleries_tags", "8", services.ActionSkipped, ""); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Finished() {
		t.Fatalf("expected one open run, got %+v", runs)
	}

	if err := run.Finish(ctx, journal.Counts{Matched: 2, Updated: 1, Skipped: 1}, errors.New("boom")); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	runs, err = store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	got := runs[0]
	if !got.Finished() || got.Mode != "galleries_tags" || got.Source != "plugin" {
		t.Fatalf("unexpected run %+v", got)
	}
	if got.Counts != (journal.Counts{Matched: 2, Updated: 1, Skipped: 1}) || got.Error != "boom" {
		t.Fatalf("unexpected totals %+v", got)
	}

	events, err := store.Events(ctx, run.ID())
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 || events[0].GalleryID != "7" || events[0].Detail != "title=Set A" || events[1].Detail != "" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openJournal(t)

	var ids []string
	for _, mode := range []string{"galleries_title", "galleries_date", "galleries_tags"} {
		run, err := store.BeginRun(ctx, mode, "cli")
		if err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
		ids = append(ids, run.ID())
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected order %+v", runs)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.BeginRun(ctx, "galleries_title", "cli"); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	_ = store.Close()

	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.RecentRuns(ctx, 0)
	if err != nil || len(runs) != 1 {
		t.Fatalf("runs=%v err=%v", runs, err)
	}
}
