package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/app"
	"github.com/heartmarshall/civic-topics-backend/internal/service/triage"
)

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Classify proposed topics into merges, approvals and blocks",
	Long: `Send proposed topics to the classifier and report its suggestions.

Nothing is written unless --apply is given. Threshold flags override the
configured minimum confidence per decision category.

Examples:
  topicctl triage                          # Dry run
  topicctl triage --apply                  # Apply with configured thresholds
  topicctl triage --apply --merge 0.95     # Stricter merges`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		apply, _ := flags.GetBool("apply")
		limit, _ := flags.GetInt("limit")

		th := app.TriageThresholds(cfg.Triage)
		if flags.Changed("block") {
			th.Block, _ = flags.GetFloat64("block")
		}
		if flags.Changed("merge") {
			th.Merge, _ = flags.GetFloat64("merge")
		}
		if flags.Changed("approve") {
			th.Approve, _ = flags.GetFloat64("approve")
		}
		if flags.Changed("approve-novel") {
			th.ApproveNovel, _ = flags.GetFloat64("approve-novel")
		}
		if limit <= 0 {
			limit = cfg.Triage.MaxTopics
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			rep, err := c.Triage.Run(ctx, triage.Options{Apply: apply, MaxTopics: limit, Thresholds: th})
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		})
	},
}

func printReport(out io.Writer, rep triage.Report) {
	if rep.Topics == 0 {
		fmt.Fprintln(out, "No proposed topics")
		return
	}

	fmt.Fprintf(out, "Triaged %d proposed topic(s)\n\n", rep.Topics)
	if resp := rep.Response; resp != nil {
		for _, m := range resp.MergeMap {
			fmt.Fprintf(out, "  merge    %v -> %-32s %.2f  %s\n", m.Aliases, m.Canonical, m.Confidence, m.Rationale)
		}
		for _, d := range resp.Approvals {
			fmt.Fprintf(out, "  approve  %-32s %.2f  %s\n", d.Topic, d.Confidence, d.Rationale)
		}
		for _, d := range resp.Blocks {
			fmt.Fprintf(out, "  block    %-32s %.2f  %s\n", d.Topic, d.Confidence, d.Rationale)
		}
	}

	fmt.Fprintln(out)
	if !rep.Applied {
		fmt.Fprintln(out, "Dry run: nothing written. Run with --apply to apply decisions.")
		return
	}
	fmt.Fprintf(out, "Merged %d, approved %d, blocked %d, skipped %d\n",
		rep.Merged, rep.Approved, rep.Blocked, rep.Skipped)
}

func init() {
	f := triageCmd.Flags()
	f.Bool("apply", false, "Apply decisions instead of only reporting them")
	f.Int("limit", 0, "Maximum proposed topics per run (default from config)")
	f.Float64("block", 0, "Minimum confidence to block")
	f.Float64("merge", 0, "Minimum confidence to merge")
	f.Float64("approve", 0, "Minimum confidence to approve a previously reviewed topic")
	f.Float64("approve-novel", 0, "Minimum confidence to approve a never-reviewed topic")

	rootCmd.AddCommand(triageCmd)
}
