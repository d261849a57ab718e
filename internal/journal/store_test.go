package journal_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"prospector/internal/journal"
)

func openStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	runID := uuid.NewString()

	now := time.Now().UTC().Truncate(time.Second)
	first := journal.Record{
		RunID:           runID,
		Community:       "startups",
		Mode:            "keyword",
		Status:          journal.StatusOK,
		ScannedPosts:    12,
		ScannedComments: 40,
		MatchedPosts:    3,
		MatchedComments: 1,
		PostMean:        61.5,
		PostMin:         20,
		PostMax:         100,
		PostStdDev:      24.1,
		StartedAt:       now,
		FinishedAt:      now.Add(30 * time.Second),
	}
	if _, err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append: %v", err)
	}

	second := journal.Record{
		RunID:         runID,
		Community:     "private_sub",
		Mode:          "keyword",
		Status:        journal.StatusFailed,
		FailureReason: "community missing or forbidden",
		StartedAt:     now,
		FinishedAt:    now,
	}
	if _, err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append failed record: %v", err)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Most recent first.
	if records[0].Community != "private_sub" || records[0].Status != journal.StatusFailed {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[0].FailureReason != "community missing or forbidden" {
		t.Errorf("failure reason = %q", records[0].FailureReason)
	}
	got := records[1]
	if got.MatchedPosts != 3 || got.ScannedComments != 40 || got.PostMax != 100 {
		t.Errorf("counts not preserved: %+v", got)
	}
	if !got.StartedAt.Equal(first.StartedAt) {
		t.Errorf("started_at = %v, want %v", got.StartedAt, first.StartedAt)
	}
}

func TestAppendRequiresIdentity(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, journal.Record{Community: "x"}); err == nil {
		t.Fatal("expected error without run id")
	}
	if _, err := store.Append(ctx, journal.Record{RunID: "r"}); err == nil {
		t.Fatal("expected error without community")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	_ = reopened.Close()
}
