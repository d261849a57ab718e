package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"prospector/internal/config"
	"prospector/internal/export"
	"prospector/internal/journal"
	"prospector/internal/logging"
	"prospector/internal/notifications"
	"prospector/internal/scanner"
	"prospector/internal/source"
	"prospector/internal/source/reddit"
	"prospector/internal/stats"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var communitiesFlag []string
	var thresholdFlag int
	var windowFlag string
	var noExport bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan configured communities and export matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(communitiesFlag) > 0 {
				cfg.Scan.Communities = communitiesFlag
			}
			if cmd.Flags().Changed("threshold") {
				if thresholdFlag < 0 || thresholdFlag > 100 {
					return errors.New("threshold must be between 0 and 100")
				}
				cfg.Scan.Threshold = thresholdFlag
			}
			if windowFlag != "" {
				cfg.Scan.TimeWindow = windowFlag
			}
			return runScan(cmd, ctx, cfg, noExport)
		},
	}

	cmd.Flags().StringSliceVar(&communitiesFlag, "community", nil, "Override configured communities (repeatable)")
	cmd.Flags().IntVar(&thresholdFlag, "threshold", 0, "Override the match threshold (0-100)")
	cmd.Flags().StringVar(&windowFlag, "window", "", "Override the search time window (hour, day, week, month, year, all)")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "Skip CSV export")
	return cmd
}

func runScan(cmd *cobra.Command, cmdCtx *commandContext, cfg *config.Config, noExport bool) error {
	if err := cfg.ValidateCredentials(); err != nil {
		return err
	}
	window, err := source.ParseTimeWindow(cfg.Scan.TimeWindow)
	if err != nil {
		return err
	}
	cat, err := cmdCtx.loadCatalog()
	if err != nil {
		return err
	}

	signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another prospector scan is already running")
	}
	defer lock.Unlock()

	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr", cfg.LogPath()},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	creds := cfg.Credentials()
	client, err := reddit.New(reddit.Credentials{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Username:     creds.Username,
		Password:     creds.Password,
		UserAgent:    creds.UserAgent,
	},
		reddit.WithRequestInterval(secondsToDuration(cfg.Scan.RequestIntervalSeconds)),
		reddit.WithContinuationBudget(cfg.Scan.ContinuationBudget))
	if err != nil {
		return err
	}

	scan := scanner.New(client, cat, scanner.Config{
		Threshold:      cfg.Scan.Threshold,
		TimeWindow:     window,
		ListingLimit:   cfg.Scan.ListingLimit,
		QueryPause:     secondsToDuration(cfg.Scan.QueryIntervalSeconds),
		CommunityPause: secondsToDuration(cfg.Scan.CommunityIntervalSeconds),
	}, logger)

	var exporter *export.Writer
	if !noExport {
		exporter, err = export.NewWriter(cfg.Paths.ExportDir)
		if err != nil {
			return err
		}
	}
	notifier := notifications.NewService(notifications.Options{
		Topic:          cfg.Notifications.NtfyTopic,
		RequestTimeout: time.Duration(cfg.Notifications.RequestTimeout) * time.Second,
		MinMatches:     cfg.Notifications.MinMatches,
	})

	runID := uuid.NewString()
	runStart := time.Now()
	logger.Info("scan starting",
		logging.String(logging.FieldRunID, runID),
		logging.String("mode", string(cat.Mode())),
		logging.Int("communities", len(cfg.Scan.Communities)))

	results := scan.ScanAll(signalCtx, cfg.Scan.Communities, func(res *scanner.Result) {
		if signalCtx.Err() != nil {
			return
		}
		finishedAt := time.Now()
		startedAt := finishedAt.Add(-res.Duration)

		if _, err := store.Append(signalCtx, journalRecord(runID, string(cat.Mode()), res, startedAt, finishedAt)); err != nil {
			logger.Warn("journal append failed",
				logging.String(logging.FieldCommunity, res.Community),
				logging.Error(err))
		}

		if res.Failed() {
			if cfg.Notifications.Errors {
				_ = notifier.NotifyError(signalCtx, res.Err, fmt.Sprintf("scanning r/%s", res.Community))
			}
			return
		}

		if exporter != nil {
			paths, err := exporter.WriteBuckets(res.Community, res.Posts, res.Comments, finishedAt)
			if err != nil {
				logger.Error("export failed",
					logging.String(logging.FieldCommunity, res.Community),
					logging.Error(err))
			} else {
				for _, path := range paths {
					logger.Info("exported matches",
						logging.String(logging.FieldCommunity, res.Community),
						logging.String("path", path))
				}
			}
		}
		_ = notifier.NotifyMatchesFound(signalCtx, res.Community, len(res.Posts), len(res.Comments))
	})

	totalMatches := 0
	for _, res := range results {
		totalMatches += len(res.Posts) + len(res.Comments)
	}

	if cfg.Notifications.ScanComplete {
		_ = notifier.NotifyScanCompleted(signalCtx, len(results), totalMatches, time.Since(runStart))
	}

	printScanSummary(cmd, results)
	logger.Info("scan finished",
		logging.String(logging.FieldRunID, runID),
		logging.Int("matches", totalMatches),
		logging.Duration("duration", time.Since(runStart)))

	if err := signalCtx.Err(); err != nil {
		return err
	}
	return nil
}

func journalRecord(runID, mode string, res *scanner.Result, startedAt, finishedAt time.Time) journal.Record {
	rec := journal.Record{
		RunID:      runID,
		Community:  res.Community,
		Mode:       mode,
		Status:     journal.StatusOK,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if res.Failed() {
		rec.Status = journal.StatusFailed
		rec.FailureReason = res.Err.Error()
		return rec
	}
	posts := res.PostScores.Summarize()
	comments := res.CommentScores.Summarize()
	rec.ScannedPosts = posts.Count
	rec.ScannedComments = comments.Count
	rec.MatchedPosts = len(res.Posts)
	rec.MatchedComments = len(res.Comments)
	rec.PostMean = posts.Mean
	rec.PostMin = posts.Min
	rec.PostMax = posts.Max
	rec.PostStdDev = posts.StdDev
	rec.CommentMean = comments.Mean
	rec.CommentMin = comments.Min
	rec.CommentMax = comments.Max
	rec.CommentStdDev = comments.StdDev
	return rec
}

func printScanSummary(cmd *cobra.Command, results []*scanner.Result) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		if res.Failed() {
			rows = append(rows, []string{res.Community, "failed", "-", "-", "-", "-", res.Err.Error()})
			continue
		}
		posts := res.PostScores.Summarize()
		comments := res.CommentScores.Summarize()
		rows = append(rows, []string{
			res.Community,
			"ok",
			strconv.Itoa(len(res.Posts)),
			strconv.Itoa(len(res.Comments)),
			formatScoreRange(posts),
			formatScoreRange(comments),
			res.Duration.Round(time.Millisecond).String(),
		})
	}
	headers := []string{"COMMUNITY", "STATUS", "POSTS", "COMMENTS", "POST SCORES", "COMMENT SCORES", "DURATION"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignRight}
	fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
}

func formatScoreRange(s stats.Summary) string {
	if s.Count == 0 {
		return "-"
	}
	return fmt.Sprintf("%d-%d (mean %.1f)", s.Min, s.Max, s.Mean)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
