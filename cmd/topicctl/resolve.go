package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/app"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a raw tag to a topic, creating a proposed topic if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			res, err := c.Identity.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Topic == nil {
				fmt.Fprintf(out, "%q: no topic (%s)\n", args[0], res.Match)
				return nil
			}
			fmt.Fprintf(out, "%q -> %s %q [%s, status %s]\n",
				args[0], res.Topic.ID, res.Topic.Name, res.Match, res.Topic.Status)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
