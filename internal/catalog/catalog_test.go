package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewNormalizes(t *testing.T) {
	cat, err := New(ModeKeyword, []string{"  Need Machine Learning ", "", "AI Consultation"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	want := []string{"need machine learning", "ai consultation"}
	got := cat.Phrases()
	if len(got) != len(want) {
		t.Fatalf("got %d phrases, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phrase %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewEmpty(t *testing.T) {
	if _, err := New(ModePhrase, []string{"", "   "}); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"keyword", ModeKeyword, false},
		{" Phrase ", ModePhrase, false},
		{"semantic", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.txt")
	data := "# leads\nneed machine learning\n\nBuild AI Model\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(ModeKeyword, path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cat.Len())
	}
	if cat.Phrases()[1] != "build ai model" {
		t.Errorf("second phrase = %q", cat.Phrases()[1])
	}
	if cat.Mode() != ModeKeyword {
		t.Errorf("Mode = %q, want keyword", cat.Mode())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(ModePhrase, filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
