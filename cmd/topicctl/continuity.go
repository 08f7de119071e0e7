package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/app"
	"github.com/heartmarshall/civic-topics-backend/internal/service/continuity"
)

var continuityCmd = &cobra.Command{
	Use:   "continuity [topic-id]",
	Short: "Recompute lifecycle status for a topic or every topic of a meeting",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meetingID, _ := cmd.Flags().GetInt64("meeting")
		if (len(args) == 1) == (meetingID != 0) {
			return errors.New("pass exactly one of a topic id or --meeting")
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			var results []continuity.Result
			if meetingID != 0 {
				res, err := c.Continuity.ByMeeting(ctx, meetingID)
				if err != nil {
					return err
				}
				results = res
			} else {
				id, err := parseTopicID(args[0])
				if err != nil {
					return err
				}
				res, err := c.Continuity.Recompute(ctx, id)
				if err != nil {
					return err
				}
				results = []continuity.Result{res}
			}

			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s changed=%t events=%d\n",
					r.TopicID, r.Status, r.Changed, r.EventsWritten)
			}
			return nil
		})
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill [topic-id]",
	Short: "Rebuild appearances from agenda item links and recompute continuity",
	Long: `Rebuild a topic's appearance ledger from its agenda item links, then
recompute its lifecycle status. Without a topic id every topic is rebuilt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var topicID *uuid.UUID
		if len(args) == 1 {
			id, err := parseTopicID(args[0])
			if err != nil {
				return err
			}
			topicID = &id
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			res, err := c.Continuity.Backfill(ctx, topicID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backfilled %d topic(s), %d appearance(s), %d failed\n",
				res.Topics, res.Appearances, res.Failed)
			return nil
		})
	},
}

func init() {
	continuityCmd.Flags().Int64("meeting", 0, "Recompute every topic linked to this meeting")

	rootCmd.AddCommand(continuityCmd)
	rootCmd.AddCommand(backfillCmd)
}
