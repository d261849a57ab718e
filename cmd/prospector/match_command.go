package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"prospector/internal/matcher"
)

// newMatchCommand evaluates ad-hoc text against the configured catalog
// without contacting any community. Useful for tuning the threshold.
func newMatchCommand(ctx *commandContext) *cobra.Command {
	var thresholdFlag int

	cmd := &cobra.Command{
		Use:   "match [text]",
		Short: "Evaluate text against the phrase catalog",
		Long: "Evaluate text against the phrase catalog and print the best " +
			"fuzzy score. Reads from stdin when no argument is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			threshold := cfg.Scan.Threshold
			if cmd.Flags().Changed("threshold") {
				if thresholdFlag < 0 || thresholdFlag > 100 {
					return fmt.Errorf("threshold must be between 0 and 100, got %d", thresholdFlag)
				}
				threshold = thresholdFlag
			}

			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}
			text = strings.TrimSpace(text)

			matched, score, phrase := matcher.EvaluatePhrase(text, cat.Phrases(), threshold)
			out := cmd.OutOrStdout()
			if matched {
				fmt.Fprintf(out, "match (score %d, threshold %d): %s\n", score, threshold, phrase)
				return nil
			}
			fmt.Fprintf(out, "no match (best score %d, threshold %d)\n", score, threshold)
			return nil
		},
	}

	cmd.Flags().IntVar(&thresholdFlag, "threshold", 0, "Override the match threshold (0-100)")
	return cmd
}
