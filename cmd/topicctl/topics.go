package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/app"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/topic"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Inspect topics",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics, most recently active first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		input := topic.ListTopicsInput{}
		input.Limit, _ = flags.GetInt("limit")
		input.Offset, _ = flags.GetInt("offset")
		if flags.Changed("status") {
			v, _ := flags.GetString("status")
			s := domain.TopicStatus(v)
			input.Status = &s
		}
		if flags.Changed("lifecycle") {
			v, _ := flags.GetString("lifecycle")
			l := domain.LifecycleStatus(v)
			input.LifecycleStatus = &l
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			topics, err := c.Topics.ListTopics(ctx, input)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tLIFECYCLE\tLAST ACTIVITY")
			for _, t := range topics {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Status, t.Lifecycle(), formatTime(t.LastActivityAt))
			}
			return tw.Flush()
		})
	},
}

var topicsShowCmd = &cobra.Command{
	Use:   "show <topic-id|slug>",
	Short: "Show a topic with its aliases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			var (
				t   *domain.Topic
				err error
			)
			if id, perr := uuid.Parse(args[0]); perr == nil {
				t, err = c.Topics.GetTopic(ctx, id)
			} else {
				t, err = c.Topics.GetTopicBySlug(ctx, args[0])
			}
			if err != nil {
				return err
			}

			aliases, err := c.Topics.Aliases(ctx, t.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", t.ID, t.Name)
			fmt.Fprintf(out, "  slug:           %s\n", t.Slug)
			fmt.Fprintf(out, "  status:         %s\n", t.Status)
			fmt.Fprintf(out, "  lifecycle:      %s\n", t.Lifecycle())
			fmt.Fprintf(out, "  first seen:     %s\n", formatTime(t.FirstSeenAt))
			fmt.Fprintf(out, "  last seen:      %s\n", formatTime(t.LastSeenAt))
			fmt.Fprintf(out, "  last activity:  %s\n", formatTime(t.LastActivityAt))
			if t.ResidentImpactScore != nil {
				fmt.Fprintf(out, "  resident impact: %d\n", *t.ResidentImpactScore)
			}
			for _, a := range aliases {
				fmt.Fprintf(out, "  alias:          %s\n", a.Name)
			}
			return nil
		})
	},
}

func init() {
	f := topicsListCmd.Flags()
	f.String("status", "", "Filter by governance status (proposed, approved, blocked)")
	f.String("lifecycle", "", "Filter by lifecycle status (active, dormant, resolved, recurring)")
	f.Int("limit", 50, "Maximum topics to list")
	f.Int("offset", 0, "Topics to skip")

	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsShowCmd)
	rootCmd.AddCommand(topicsCmd)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
