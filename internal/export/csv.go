// Package export persists match buckets to timestamped CSV files for manual
// review. A bucket with no matches produces no file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"prospector/internal/content"
	"prospector/internal/textutil"
)

// permalinkBase turns relative platform permalinks into absolute URLs.
const permalinkBase = "https://reddit.com"

// timestampLayout encodes the scan time into filenames so successive runs
// never overwrite each other.
const timestampLayout = "20060102_150405"

var header = []string{
	"type", "title", "text", "url", "author", "score", "created_utc", "matched_score", "keyword_matched",
}

// Writer writes match buckets under a single export directory.
type Writer struct {
	dir string
}

// NewWriter builds a Writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("export directory must be set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure export directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteBuckets writes the post and comment buckets for one community scan.
// It returns the paths of the files actually written; empty buckets are
// skipped entirely.
func (w *Writer) WriteBuckets(community string, posts, comments []content.Match, scannedAt time.Time) ([]string, error) {
	stamp := scannedAt.Format(timestampLayout)
	token := textutil.SanitizeToken(community)

	var written []string
	if len(posts) > 0 {
		path := filepath.Join(w.dir, fmt.Sprintf("posts_%s_%s.csv", token, stamp))
		if err := writeFile(path, posts); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if len(comments) > 0 {
		path := filepath.Join(w.dir, fmt.Sprintf("comments_%s_%s.csv", token, stamp))
		if err := writeFile(path, comments); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, matches []content.Match) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, match := range matches {
		if err := cw.Write(record(match)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func record(match content.Match) []string {
	item := match.Item
	return []string{
		string(item.Kind),
		item.Title,
		item.Body,
		absoluteURL(item.Permalink),
		item.DisplayAuthor(),
		strconv.Itoa(item.Score),
		item.CreatedUTC.UTC().Format(time.RFC3339),
		strconv.Itoa(match.MatchedScore),
		match.MatchedPhrase,
	}
}

func absoluteURL(permalink string) string {
	if permalink == "" {
		return ""
	}
	if strings.HasPrefix(permalink, "http://") || strings.HasPrefix(permalink, "https://") {
		return permalink
	}
	if !strings.HasPrefix(permalink, "/") {
		permalink = "/" + permalink
	}
	return permalinkBase + permalink
}
