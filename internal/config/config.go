package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir  string `toml:"state_dir"`
	ExportDir string `toml:"export_dir"`
	LogDir    string `toml:"log_dir"`
}

// Reddit contains API credentials for the Reddit data source. Each field
// falls back to the matching REDDIT_* environment variable when unset.
type Reddit struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	UserAgent    string `toml:"user_agent"`
}

// Catalog contains the phrase catalog configuration.
type Catalog struct {
	Mode        string   `toml:"mode"`
	Phrases     []string `toml:"phrases"`
	PhrasesFile string   `toml:"phrases_file"`
}

// Scan contains configuration for scan traversal and pacing.
type Scan struct {
	Communities              []string `toml:"communities"`
	Threshold                int      `toml:"threshold"`
	TimeWindow               string   `toml:"time_window"`
	ListingLimit             int      `toml:"listing_limit"`
	RequestIntervalSeconds   float64  `toml:"request_interval_seconds"`
	QueryIntervalSeconds     float64  `toml:"query_interval_seconds"`
	CommunityIntervalSeconds float64  `toml:"community_interval_seconds"`
	ContinuationBudget       int      `toml:"continuation_budget"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	MinMatches     int    `toml:"min_matches"`
	ScanComplete   bool   `toml:"scan_complete"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Prospector.
//
// Configuration sections by subsystem:
//   - Paths: state, export, and log directories
//   - Reddit: API credentials for the Reddit data source
//   - Catalog: phrase catalog and matching mode
//   - Scan: communities, threshold, time window, and pacing
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Reddit        Reddit        `toml:"reddit"`
	Catalog       Catalog       `toml:"catalog"`
	Scan          Scan          `toml:"scan"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/prospector/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/prospector/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("prospector.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for scan runs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.ExportDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// JournalPath returns the location of the scan journal database.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "prospector.db")
}

// LockPath returns the location of the single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "prospector.lock")
}

// LogPath returns the location of the scan log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "prospector.log")
}

// Credentials returns the trimmed Reddit credential set.
func (c *Config) Credentials() Reddit {
	return Reddit{
		ClientID:     strings.TrimSpace(c.Reddit.ClientID),
		ClientSecret: strings.TrimSpace(c.Reddit.ClientSecret),
		Username:     strings.TrimSpace(c.Reddit.Username),
		Password:     strings.TrimSpace(c.Reddit.Password),
		UserAgent:    strings.TrimSpace(c.Reddit.UserAgent),
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
