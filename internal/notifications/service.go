// Package notifications delivers scan outcome push notifications via ntfy.
// When no topic is configured, a noop implementation is returned so callers
// never need nil checks.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "Prospector/0.1.0"

// Service defines the notification surface exposed to the scan workflow.
type Service interface {
	NotifyMatchesFound(ctx context.Context, community string, posts, comments int) error
	NotifyScanCompleted(ctx context.Context, communities, matches int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, scope string) error
	TestNotification(ctx context.Context) error
}

// Options configures the ntfy-backed service.
type Options struct {
	Topic          string
	RequestTimeout time.Duration
	// MinMatches suppresses per-community alerts below this many total
	// matches. Zero alerts on any match.
	MinMatches int
}

// NewService builds a notification service backed by ntfy when configured.
func NewService(opts Options) Service {
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		return noopService{}
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint:   topic,
		minMatches: opts.MinMatches,
		client:     &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	minMatches int
	client     *http.Client
}

func (n *ntfyService) NotifyMatchesFound(ctx context.Context, community string, posts, comments int) error {
	if posts+comments < n.minMatches {
		return nil
	}
	data := payload{
		title:   "Prospector - Matches Found",
		message: fmt.Sprintf("r/%s: %d matching posts, %d matching comments", community, posts, comments),
		tags:    []string{"prospector", "match"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScanCompleted(ctx context.Context, communities, matches int, duration time.Duration) error {
	data := payload{
		title:   "Prospector - Scan Complete",
		message: fmt.Sprintf("Scanned %d communities, %d total matches in %s", communities, matches, duration.Round(time.Second)),
		tags:    []string{"prospector", "scan", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, scope string) error {
	scope = strings.TrimSpace(scope)
	message := fmt.Sprintf("Error: %v", err)
	if scope != "" {
		message = fmt.Sprintf("Error (%s): %v", scope, err)
	}
	data := payload{
		title:    "Prospector - Error",
		message:  message,
		tags:     []string{"prospector", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:   "Prospector - Test",
		message: "Test notification from prospector",
		tags:    []string{"prospector", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyMatchesFound(context.Context, string, int, int) error { return nil }
func (noopService) NotifyScanCompleted(context.Context, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
