// Package scanner walks a community's content, classifies every post and
// comment against the phrase catalog, and aggregates matches and score
// statistics. Failures are contained at community granularity: one broken
// community never aborts a multi-community scan.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"prospector/internal/catalog"
	"prospector/internal/content"
	"prospector/internal/logging"
	"prospector/internal/matcher"
	"prospector/internal/source"
	"prospector/internal/stats"
)

// Config holds the tunables of one scan.
type Config struct {
	// Threshold is the minimum fuzzy score for a phrase-mode match.
	Threshold int
	// TimeWindow bounds keyword-mode searches.
	TimeWindow source.TimeWindow
	// ListingLimit bounds the phrase-mode recent listing.
	ListingLimit int
	// QueryPause is the delay between successive keyword queries within a
	// community.
	QueryPause time.Duration
	// CommunityPause is the delay between successive communities.
	CommunityPause time.Duration
}

// Result aggregates one community scan. Empty buckets are a valid outcome,
// not an error; Err is set only when the community failed as a whole.
type Result struct {
	Community     string
	Posts         []content.Match
	Comments      []content.Match
	PostScores    stats.Distribution
	CommentScores stats.Distribution
	Duration      time.Duration
	Err           error
}

// Failed reports whether the community scan failed as a whole.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Scanner drives community scans. It is strictly sequential: one community
// is fully processed before the next begins.
type Scanner struct {
	src    source.Source
	cat    *catalog.Catalog
	cfg    Config
	logger *slog.Logger
}

// New builds a Scanner. A nil logger falls back to a no-op logger.
func New(src source.Source, cat *catalog.Catalog, cfg Config, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = matcher.DefaultThreshold
	}
	if cfg.TimeWindow == "" {
		cfg.TimeWindow = source.WindowWeek
	}
	return &Scanner{
		src:    src,
		cat:    cat,
		cfg:    cfg,
		logger: logger.With(logging.String(logging.FieldComponent, "scanner")),
	}
}

// ScanAll scans every community in order, pausing between them. Transient
// per-community failures are logged and recorded on the community's Result;
// the loop always continues to the next community. When each is non-nil it
// is invoked with every Result as soon as the community finishes, before
// the next one starts, so callers can journal or export incrementally.
func (s *Scanner) ScanAll(ctx context.Context, communities []string, each func(*Result)) []*Result {
	results := make([]*Result, 0, len(communities))
	for i, community := range communities {
		if i > 0 {
			if err := pause(ctx, s.cfg.CommunityPause); err != nil {
				break
			}
		}
		start := time.Now()
		res, err := s.ScanCommunity(ctx, community)
		if err != nil {
			s.logger.Error("community scan failed",
				logging.String(logging.FieldCommunity, community),
				logging.Error(err))
			res = &Result{Community: community, Err: err, Duration: time.Since(start)}
		}
		results = append(results, res)
		if each != nil {
			each(res)
		}
	}
	return results
}

// ScanCommunity runs one community scan according to the catalog mode.
func (s *Scanner) ScanCommunity(ctx context.Context, community string) (*Result, error) {
	start := time.Now()
	res := &Result{Community: community}

	var err error
	switch s.cat.Mode() {
	case catalog.ModeKeyword:
		err = s.scanKeywords(ctx, community, res)
	case catalog.ModePhrase:
		err = s.scanListing(ctx, community, res)
	default:
		err = fmt.Errorf("unsupported catalog mode %q", s.cat.Mode())
	}
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	s.logger.Info("community scan complete",
		logging.String(logging.FieldCommunity, community),
		logging.Int("matched_posts", len(res.Posts)),
		logging.Int("matched_comments", len(res.Comments)),
		logging.Int("scanned_posts", res.PostScores.Count()),
		logging.Int("scanned_comments", res.CommentScores.Count()),
		logging.Duration("duration", res.Duration))
	return res, nil
}

// scanKeywords submits every catalog entry as an independent search query.
// A submission surfaced by several keywords is bucketed once per keyword;
// deduplication across keywords is deliberately absent.
func (s *Scanner) scanKeywords(ctx context.Context, community string, res *Result) error {
	keywords := s.cat.Phrases()
	for i, keyword := range keywords {
		if i > 0 {
			if err := pause(ctx, s.cfg.QueryPause); err != nil {
				return err
			}
		}
		s.logger.Debug("searching keyword",
			logging.String(logging.FieldCommunity, community),
			logging.String(logging.FieldKeyword, keyword))

		subs, err := s.src.Search(ctx, community, keyword, s.cfg.TimeWindow)
		if err != nil {
			return fmt.Errorf("search %q: %w", keyword, err)
		}
		for _, sub := range subs {
			// The platform's search already selected this submission for
			// the keyword, so it is bucketed unconditionally; the fuzzy
			// score is still recorded for the distribution.
			_, score := matcher.Evaluate(sub.Post.Text(), keywords, s.cfg.Threshold)
			res.PostScores.Add(score)
			res.Posts = append(res.Posts, content.Match{
				Item:          sub.Post,
				MatchedScore:  score,
				MatchedPhrase: keyword,
			})

			if err := s.scanComments(ctx, sub.ID, res, keywordCommentPolicy(keywords, s.cfg.Threshold)); err != nil {
				return err
			}
		}
	}
	return nil
}

// scanListing evaluates one bounded recent listing against the whole catalog
// without provenance tracking. Each item appears at most once per bucket.
func (s *Scanner) scanListing(ctx context.Context, community string, res *Result) error {
	subs, err := s.src.Recent(ctx, community, s.cfg.ListingLimit)
	if err != nil {
		return fmt.Errorf("recent listing: %w", err)
	}
	policy := phrasePolicy(s.cat.Phrases(), s.cfg.Threshold)
	for _, sub := range subs {
		if match, ok := policy(sub.Post, &res.PostScores); ok {
			res.Posts = append(res.Posts, match)
		}
		if err := s.scanComments(ctx, sub.ID, res, policy); err != nil {
			return err
		}
	}
	return nil
}

// commentPolicy decides whether an item belongs in a bucket, recording its
// score in the distribution either way.
type matchPolicy func(item content.Item, dist *stats.Distribution) (content.Match, bool)

func (s *Scanner) scanComments(ctx context.Context, submissionID string, res *Result, policy matchPolicy) error {
	comments, err := s.src.Comments(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("comments for %s: %w", submissionID, err)
	}
	for _, comment := range comments {
		if match, ok := policy(comment, &res.CommentScores); ok {
			res.Comments = append(res.Comments, match)
		}
	}
	return nil
}

// keywordCommentPolicy implements the keyword-mode comment rule: a comment
// matches when any keyword appears as a case-insensitive substring. The
// fuzzy score is recorded for statistics but does not drive the decision.
func keywordCommentPolicy(keywords []string, threshold int) matchPolicy {
	return func(item content.Item, dist *stats.Distribution) (content.Match, bool) {
		_, score := matcher.Evaluate(item.Text(), keywords, threshold)
		dist.Add(score)
		ok, keyword := matcher.ContainsAny(item.Text(), keywords)
		if !ok {
			return content.Match{}, false
		}
		return content.Match{Item: item, MatchedScore: score, MatchedPhrase: keyword}, true
	}
}

// phrasePolicy implements the phrase-mode rule: the fuzzy threshold check
// decides, and no provenance is tracked.
func phrasePolicy(phrases []string, threshold int) matchPolicy {
	return func(item content.Item, dist *stats.Distribution) (content.Match, bool) {
		matched, score := matcher.Evaluate(item.Text(), phrases, threshold)
		dist.Add(score)
		if !matched {
			return content.Match{}, false
		}
		return content.Match{Item: item, MatchedScore: score}, true
	}
}

// pause sleeps for the configured delay unless the context ends first.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
