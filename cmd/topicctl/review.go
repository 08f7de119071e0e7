package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/app"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/topic"
)

var reviewActions = map[string]domain.ReviewAction{
	"approve":      domain.ReviewApproved,
	"block":        domain.ReviewBlocked,
	"needs-review": domain.ReviewNeedsReview,
	"unblock":      domain.ReviewUnblocked,
}

var reviewCmd = &cobra.Command{
	Use:   "review <topic-id> <approve|block|needs-review|unblock>",
	Short: "Apply a manual governance decision to a topic",
	Long: `Apply a manual governance decision to a topic.

Blocking also adds the topic's name, and the names of similar blocked
topics, to the blocklist.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTopicID(args[0])
		if err != nil {
			return err
		}
		action, ok := reviewActions[args[1]]
		if !ok {
			return fmt.Errorf("unknown action %q", args[1])
		}
		reason := optionalString(cmd, "reason")

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			changed, err := c.Topics.Review(ctx, topic.ReviewInput{TopicID: id, Action: action, Reason: reason})
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Topic %s unchanged\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Topic %s: %s\n", id, action)
			return nil
		})
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <source-id> <target-id>",
	Short: "Merge a duplicate topic into its canonical topic",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := parseTopicID(args[0])
		if err != nil {
			return err
		}
		target, err := parseTopicID(args[1])
		if err != nil {
			return err
		}
		reason := optionalString(cmd, "reason")

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			res, err := c.Topics.Merge(ctx, topic.MergeInput{SourceID: source, TargetID: target, Reason: reason})
			if err != nil {
				return err
			}
			if !res.Merged {
				fmt.Fprintf(cmd.OutOrStdout(), "Topic %s no longer exists; nothing merged\n", source)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Merged %s into %s: %d alias(es), %d link(s) moved (%d dropped), %d appearance(s) moved (%d dropped)\n",
				source, target, res.AliasesMoved, res.LinksMoved, res.LinksDropped, res.AppearancesMoved, res.AppearancesDropped)
			return nil
		})
	},
}

var impactCmd = &cobra.Command{
	Use:   "impact <topic-id> <score>",
	Short: "Override a topic's resident impact score (1-5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTopicID(args[0])
		if err != nil {
			return err
		}
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[1], err)
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			if err := c.Topics.OverrideResidentImpact(ctx, id, score); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Topic %s resident impact set to %d\n", id, score)
			return nil
		})
	},
}

func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func init() {
	reviewCmd.Flags().String("reason", "", "Reason recorded on the review event")
	mergeCmd.Flags().String("reason", "", "Reason recorded on the review event")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(impactCmd)
}
