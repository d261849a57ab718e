// Package catalog holds the ordered set of target phrases a scan searches
// for. A catalog is immutable once built; order is preserved because the
// matcher reports the first phrase that crosses the threshold.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"prospector/internal/textutil"
)

// Mode selects how the catalog drives a community scan.
type Mode string

const (
	// ModeKeyword submits each entry as a search query and tracks which
	// entry produced each match.
	ModeKeyword Mode = "keyword"
	// ModePhrase evaluates a flat recent-items listing against every entry
	// without provenance tracking.
	ModePhrase Mode = "phrase"
)

// ParseMode validates a mode string from configuration.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeKeyword:
		return ModeKeyword, nil
	case ModePhrase:
		return ModePhrase, nil
	default:
		return "", fmt.Errorf("catalog mode: unsupported value %q", value)
	}
}

// Catalog is an ordered, read-only list of case-folded target phrases.
type Catalog struct {
	mode    Mode
	phrases []string
}

// New builds a catalog from the supplied phrases. Entries are trimmed and
// case-folded; empty entries are dropped. An empty result is an error since
// a scan with nothing to look for is a configuration mistake.
func New(mode Mode, phrases []string) (*Catalog, error) {
	cleaned := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		phrase = textutil.Fold(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		cleaned = append(cleaned, phrase)
	}
	if len(cleaned) == 0 {
		return nil, errors.New("catalog: no phrases configured")
	}
	return &Catalog{mode: mode, phrases: cleaned}, nil
}

// Load reads a newline-delimited phrase file. Blank lines and lines starting
// with '#' are skipped.
func Load(mode Mode, path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open phrase file: %w", err)
	}
	defer file.Close()

	var phrases []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		phrases = append(phrases, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read phrase file: %w", err)
	}
	return New(mode, phrases)
}

// Mode reports how the catalog drives a scan.
func (c *Catalog) Mode() Mode {
	return c.mode
}

// Phrases returns the ordered phrase list. Callers must not modify the
// returned slice.
func (c *Catalog) Phrases() []string {
	return c.phrases
}

// Len returns the number of phrases.
func (c *Catalog) Len() int {
	return len(c.phrases)
}
