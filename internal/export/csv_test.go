package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"prospector/internal/content"
)

func match(kind content.Kind, title, body, author string) content.Match {
	return content.Match{
		Item: content.Item{
			Kind:       kind,
			Title:      title,
			Body:       body,
			Permalink:  "/r/startups/comments/abc",
			Author:     author,
			Score:      7,
			CreatedUTC: time.Unix(1700000000, 0).UTC(),
		},
		MatchedScore:  88,
		MatchedPhrase: "need machine learning",
	}
}

func TestWriteBuckets(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	scannedAt := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	posts := []content.Match{match(content.KindPost, "Need ML help", "details", "alice")}
	comments := []content.Match{match(content.KindComment, "", "me too", "")}

	written, err := w.WriteBuckets("startups", posts, comments, scannedAt)
	if err != nil {
		t.Fatalf("WriteBuckets: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("wrote %d files, want 2", len(written))
	}

	wantPosts := filepath.Join(dir, "posts_startups_20260901_103000.csv")
	if written[0] != wantPosts {
		t.Errorf("posts path = %q, want %q", written[0], wantPosts)
	}

	file, err := os.Open(wantPosts)
	if err != nil {
		t.Fatalf("open posts csv: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read posts csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("posts csv has %d rows, want header + 1", len(rows))
	}
	row := rows[1]
	if row[0] != "post" || row[1] != "Need ML help" {
		t.Errorf("unexpected row start: %v", row)
	}
	if row[3] != "https://reddit.com/r/startups/comments/abc" {
		t.Errorf("url = %q", row[3])
	}
	if row[7] != "88" || row[8] != "need machine learning" {
		t.Errorf("match columns wrong: %v", row)
	}
}

func TestWriteBucketsDeletedAuthorPlaceholder(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	comments := []content.Match{match(content.KindComment, "", "body", "")}
	written, err := w.WriteBuckets("saas", nil, comments, time.Now())
	if err != nil {
		t.Fatalf("WriteBuckets: %v", err)
	}
	data, err := os.ReadFile(written[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[deleted]") {
		t.Errorf("deleted author placeholder missing: %s", data)
	}
}

func TestWriteBucketsSkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	written, err := w.WriteBuckets("analytics", nil, nil, time.Now())
	if err != nil {
		t.Fatalf("WriteBuckets: %v", err)
	}
	if len(written) != 0 {
		t.Fatalf("expected no files, got %v", written)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("export dir not empty: %v", entries)
	}
}

func TestNewWriterRequiresDir(t *testing.T) {
	if _, err := NewWriter("  "); err == nil {
		t.Fatal("expected error for empty export dir")
	}
}
