package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/app"
)

var blocklistCmd = &cobra.Command{
	Use:   "blocklist",
	Short: "Manage names that may never become topics",
}

var blocklistAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a name to the blocklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason := optionalString(cmd, "reason")
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			entry, err := c.Topics.AddToBlocklist(ctx, args[0], reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Blocklisted %q\n", entry.Name)
			return nil
		})
	},
}

var blocklistRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a name from the blocklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			if err := c.Topics.RemoveFromBlocklist(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from the blocklist\n", args[0])
			return nil
		})
	},
}

var blocklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blocklisted names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			entries, err := c.Topics.ListBlocklist(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tADDED\tREASON")
			for _, e := range entries {
				reason := ""
				if e.Reason != nil {
					reason = *e.Reason
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.CreatedAt.Format("2006-01-02"), reason)
			}
			return tw.Flush()
		})
	},
}

func init() {
	blocklistAddCmd.Flags().String("reason", "", "Why the name is blocked")

	blocklistCmd.AddCommand(blocklistAddCmd)
	blocklistCmd.AddCommand(blocklistRemoveCmd)
	blocklistCmd.AddCommand(blocklistListCmd)
	rootCmd.AddCommand(blocklistCmd)
}
