package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeReddit()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeReddit() {
	fromEnv := func(current, key string) string {
		if strings.TrimSpace(current) != "" {
			return strings.TrimSpace(current)
		}
		if value, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(value)
		}
		return ""
	}
	c.Reddit.ClientID = fromEnv(c.Reddit.ClientID, "REDDIT_CLIENT_ID")
	c.Reddit.ClientSecret = fromEnv(c.Reddit.ClientSecret, "REDDIT_CLIENT_SECRET")
	c.Reddit.Username = fromEnv(c.Reddit.Username, "REDDIT_USERNAME")
	c.Reddit.Password = fromEnv(c.Reddit.Password, "REDDIT_PASSWORD")
	c.Reddit.UserAgent = fromEnv(c.Reddit.UserAgent, "REDDIT_USER_AGENT")
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeCatalog() error {
	c.Catalog.Mode = strings.ToLower(strings.TrimSpace(c.Catalog.Mode))
	if c.Catalog.Mode == "" {
		c.Catalog.Mode = defaultCatalogMode
	}
	if strings.TrimSpace(c.Catalog.PhrasesFile) != "" {
		expanded, err := expandPath(c.Catalog.PhrasesFile)
		if err != nil {
			return fmt.Errorf("catalog.phrases_file: %w", err)
		}
		c.Catalog.PhrasesFile = expanded
	} else {
		c.Catalog.PhrasesFile = ""
	}
	phrases := make([]string, 0, len(c.Catalog.Phrases))
	for _, phrase := range c.Catalog.Phrases {
		if trimmed := strings.TrimSpace(phrase); trimmed != "" {
			phrases = append(phrases, trimmed)
		}
	}
	c.Catalog.Phrases = phrases
	return nil
}

func (c *Config) normalizeScan() {
	communities := make([]string, 0, len(c.Scan.Communities))
	seen := make(map[string]struct{}, len(c.Scan.Communities))
	for _, community := range c.Scan.Communities {
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(community), "r/"))
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		communities = append(communities, trimmed)
	}
	c.Scan.Communities = communities

	c.Scan.TimeWindow = strings.ToLower(strings.TrimSpace(c.Scan.TimeWindow))
	if c.Scan.TimeWindow == "" {
		c.Scan.TimeWindow = defaultTimeWindow
	}
	if c.Scan.ListingLimit <= 0 {
		c.Scan.ListingLimit = defaultListingLimit
	}
	if c.Scan.ListingLimit > 100 {
		c.Scan.ListingLimit = 100
	}
	if c.Scan.RequestIntervalSeconds < 0 {
		c.Scan.RequestIntervalSeconds = 0
	}
	if c.Scan.QueryIntervalSeconds < 0 {
		c.Scan.QueryIntervalSeconds = 0
	}
	if c.Scan.CommunityIntervalSeconds < 0 {
		c.Scan.CommunityIntervalSeconds = 0
	}
	if c.Scan.ContinuationBudget < 0 {
		c.Scan.ContinuationBudget = 0
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
	if c.Notifications.MinMatches < 1 {
		c.Notifications.MinMatches = defaultNotifyMinMatches
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
