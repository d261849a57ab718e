package config

import (
	"errors"
	"fmt"
)

var validTimeWindows = map[string]struct{}{
	"hour":  {},
	"day":   {},
	"week":  {},
	"month": {},
	"year":  {},
	"all":   {},
}

// Validate ensures the configuration is usable. Reddit credentials are not
// required here so offline commands keep working; scan verifies them before
// contacting the API.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Mode {
	case "keyword", "phrase":
	default:
		return fmt.Errorf("catalog.mode must be %q or %q, got %q", "keyword", "phrase", c.Catalog.Mode)
	}
	if len(c.Catalog.Phrases) == 0 && c.Catalog.PhrasesFile == "" {
		return errors.New("catalog.phrases or catalog.phrases_file must provide at least one phrase")
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.Communities) == 0 {
		return errors.New("scan.communities must include at least one community")
	}
	if c.Scan.Threshold < 0 || c.Scan.Threshold > 100 {
		return errors.New("scan.threshold must be between 0 and 100")
	}
	if _, ok := validTimeWindows[c.Scan.TimeWindow]; !ok {
		return fmt.Errorf("scan.time_window must be one of hour, day, week, month, year, all; got %q", c.Scan.TimeWindow)
	}
	return nil
}

// ValidateCredentials ensures the Reddit credential set is complete.
func (c *Config) ValidateCredentials() error {
	creds := c.Credentials()
	missing := ""
	switch {
	case creds.ClientID == "":
		missing = "reddit.client_id (or REDDIT_CLIENT_ID)"
	case creds.ClientSecret == "":
		missing = "reddit.client_secret (or REDDIT_CLIENT_SECRET)"
	case creds.Username == "":
		missing = "reddit.username (or REDDIT_USERNAME)"
	case creds.Password == "":
		missing = "reddit.password (or REDDIT_PASSWORD)"
	}
	if missing != "" {
		return fmt.Errorf("%s must be set", missing)
	}
	return nil
}
