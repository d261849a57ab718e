// Package source defines the capability interface a community scan needs
// from the external content platform, together with the error taxonomy the
// traversal engine uses to contain per-community failures.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prospector/internal/content"
)

// TimeWindow bounds a search to a trailing period.
type TimeWindow string

const (
	WindowHour  TimeWindow = "hour"
	WindowDay   TimeWindow = "day"
	WindowWeek  TimeWindow = "week"
	WindowMonth TimeWindow = "month"
	WindowYear  TimeWindow = "year"
	WindowAll   TimeWindow = "all"
)

// ParseTimeWindow validates a window string from configuration.
func ParseTimeWindow(value string) (TimeWindow, error) {
	switch w := TimeWindow(strings.ToLower(strings.TrimSpace(value))); w {
	case WindowHour, WindowDay, WindowWeek, WindowMonth, WindowYear, WindowAll:
		return w, nil
	default:
		return "", fmt.Errorf("time window: unsupported value %q", value)
	}
}

// Submission is a top-level content item together with the platform
// identifier needed to descend into its comment tree.
type Submission struct {
	ID   string
	Post content.Item
}

// Source provides read access to one platform's community content.
// Implementations resolve or discard comment-tree continuation placeholders
// according to their configured descent budget; callers never see them.
type Source interface {
	// Search returns submissions in the community matching the query within
	// the time window.
	Search(ctx context.Context, community, query string, window TimeWindow) ([]Submission, error)
	// Recent returns up to limit of the community's newest submissions.
	Recent(ctx context.Context, community string, limit int) ([]Submission, error)
	// Comments returns the flattened comment tree of a submission.
	Comments(ctx context.Context, submissionID string) ([]content.Item, error)
}

var (
	// ErrTransient marks failures recoverable at community granularity:
	// network errors, rate-limit rejections, missing or forbidden
	// communities. The scan logs them and moves on.
	ErrTransient = errors.New("transient source error")
	// ErrConfiguration marks failures that indicate broken credentials or
	// settings. These are fatal at process start.
	ErrConfiguration = errors.New("source configuration error")
)

// IsTransient reports whether err is recoverable at community granularity.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
