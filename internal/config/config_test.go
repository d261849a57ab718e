package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"prospector/internal/config"
)

func TestLoadDefaultConfigExpandsPathsAndReadsEnvCredentials(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("REDDIT_CLIENT_ID", "env-id")
	t.Setenv("REDDIT_CLIENT_SECRET", "env-secret")
	t.Setenv("REDDIT_USERNAME", "env-user")
	t.Setenv("REDDIT_PASSWORD", "env-pass")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "prospector")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.ExportDir != filepath.Join(wantState, "exports") {
		t.Fatalf("unexpected export dir: %q", cfg.Paths.ExportDir)
	}
	if cfg.Reddit.ClientID != "env-id" || cfg.Reddit.Password != "env-pass" {
		t.Fatalf("expected credentials from env, got %+v", cfg.Reddit)
	}
	if err := cfg.ValidateCredentials(); err != nil {
		t.Fatalf("ValidateCredentials: %v", err)
	}
	if cfg.Catalog.Mode != "keyword" {
		t.Fatalf("unexpected default mode: %q", cfg.Catalog.Mode)
	}
	if len(cfg.Catalog.Phrases) == 0 {
		t.Fatal("expected default phrases")
	}
	if cfg.Scan.Threshold != 70 {
		t.Fatalf("unexpected default threshold: %d", cfg.Scan.Threshold)
	}
	if cfg.Scan.TimeWindow != "week" {
		t.Fatalf("unexpected default time window: %q", cfg.Scan.TimeWindow)
	}
	if cfg.Scan.RequestIntervalSeconds != 2.0 {
		t.Fatalf("unexpected default request interval: %v", cfg.Scan.RequestIntervalSeconds)
	}
	if len(cfg.Scan.Communities) == 0 {
		t.Fatal("expected default communities")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.ExportDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if cfg.JournalPath() != filepath.Join(cfg.Paths.StateDir, "prospector.db") {
		t.Fatalf("unexpected journal path: %q", cfg.JournalPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "prospector.toml")

	type payload struct {
		Catalog struct {
			Mode    string   `toml:"mode"`
			Phrases []string `toml:"phrases"`
		} `toml:"catalog"`
		Scan struct {
			Communities     []string `toml:"communities"`
			Threshold       int      `toml:"threshold"`
			TimeWindow      string   `toml:"time_window"`
			RequestInterval float64  `toml:"request_interval_seconds"`
		} `toml:"scan"`
	}
	custom := payload{}
	custom.Catalog.Mode = "phrase"
	custom.Catalog.Phrases = []string{"  need help training a model  ", ""}
	custom.Scan.Communities = []string{"r/startups", "startups", "MachineLearning"}
	custom.Scan.Threshold = 85
	custom.Scan.TimeWindow = "Month"
	custom.Scan.RequestInterval = 0.5
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Catalog.Mode != "phrase" {
		t.Fatalf("expected phrase mode, got %q", cfg.Catalog.Mode)
	}
	if len(cfg.Catalog.Phrases) != 1 || cfg.Catalog.Phrases[0] != "need help training a model" {
		t.Fatalf("unexpected phrases: %v", cfg.Catalog.Phrases)
	}
	if len(cfg.Scan.Communities) != 2 {
		t.Fatalf("expected r/ prefix stripped and duplicates removed, got %v", cfg.Scan.Communities)
	}
	if cfg.Scan.Threshold != 85 {
		t.Fatalf("unexpected threshold: %d", cfg.Scan.Threshold)
	}
	if cfg.Scan.TimeWindow != "month" {
		t.Fatalf("unexpected time window: %q", cfg.Scan.TimeWindow)
	}
	if cfg.Scan.RequestIntervalSeconds != 0.5 {
		t.Fatalf("unexpected request interval: %v", cfg.Scan.RequestIntervalSeconds)
	}
}

func TestFileCredentialsWinOverEnv(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "prospector.toml")

	type payload struct {
		Reddit struct {
			ClientID string `toml:"client_id"`
		} `toml:"reddit"`
	}
	custom := payload{}
	custom.Reddit.ClientID = "file-id"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	t.Setenv("REDDIT_CLIENT_ID", "env-id")
	t.Setenv("REDDIT_CLIENT_SECRET", "env-secret")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Reddit.ClientID != "file-id" {
		t.Fatalf("expected client_id from file, got %q", cfg.Reddit.ClientID)
	}
	if cfg.Reddit.ClientSecret != "env-secret" {
		t.Fatalf("expected client_secret from env, got %q", cfg.Reddit.ClientSecret)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[reddit]") {
		t.Fatalf("sample config missing reddit section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Scan.Threshold != 70 {
		t.Fatalf("unexpected sample threshold: %d", cfg.Scan.Threshold)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	load := func(t *testing.T, mutate func(p map[string]any)) error {
		t.Helper()
		payload := map[string]any{}
		mutate(payload)
		data, err := toml.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		path := filepath.Join(t.TempDir(), "prospector.toml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("write payload: %v", err)
		}
		_, _, _, err = config.Load(path)
		return err
	}

	if err := load(t, func(p map[string]any) {
		p["catalog"] = map[string]any{"mode": "regex"}
	}); err == nil {
		t.Fatal("expected error for unknown catalog mode")
	}

	if err := load(t, func(p map[string]any) {
		p["catalog"] = map[string]any{"phrases": []string{"  ", ""}}
	}); err == nil {
		t.Fatal("expected error for empty catalog")
	}

	if err := load(t, func(p map[string]any) {
		p["scan"] = map[string]any{"threshold": 150}
	}); err == nil {
		t.Fatal("expected error for out-of-range threshold")
	}

	if err := load(t, func(p map[string]any) {
		p["scan"] = map[string]any{"time_window": "fortnight"}
	}); err == nil {
		t.Fatal("expected error for unknown time window")
	}

	if err := load(t, func(p map[string]any) {
		p["scan"] = map[string]any{"communities": []string{" ", "r/"}}
	}); err == nil {
		t.Fatal("expected error for empty community list")
	}
}

func TestValidateCredentialsReportsMissingField(t *testing.T) {
	cfg := config.Default()
	cfg.Reddit = config.Reddit{ClientID: "id", ClientSecret: "secret", Username: "user"}
	err := cfg.ValidateCredentials()
	if err == nil {
		t.Fatal("expected error for missing password")
	}
	if !strings.Contains(err.Error(), "reddit.password") {
		t.Fatalf("unexpected error: %v", err)
	}
}
