package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"prospector/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent community scans from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No scans recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				row := []string{
					rec.FinishedAt.Local().Format("2006-01-02 15:04"),
					rec.Community,
					rec.Mode,
					string(rec.Status),
					strconv.Itoa(rec.MatchedPosts),
					strconv.Itoa(rec.MatchedComments),
					rec.FinishedAt.Sub(rec.StartedAt).Round(time.Second).String(),
				}
				if rec.Status == journal.StatusFailed {
					row[4], row[5] = "-", "-"
					row[6] = rec.FailureReason
				}
				rows = append(rows, row)
			}
			headers := []string{"FINISHED", "COMMUNITY", "MODE", "STATUS", "POSTS", "COMMENTS", "DURATION"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight}
			fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show")
	return cmd
}
