// Command topicctl is the operator CLI for the topic engine: migrations,
// identity resolution, continuity, triage, manual review and the blocklist.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/app"
	"github.com/heartmarshall/civic-topics-backend/internal/config"
	"github.com/heartmarshall/civic-topics-backend/pkg/ctxutil"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	operator string
)

var rootCmd = &cobra.Command{
	Use:           "topicctl",
	Short:         "Operate the civic topic engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger = app.NewLogger(cfg.Log)

		if operator != "" {
			id, err := uuid.Parse(operator)
			if err != nil {
				return fmt.Errorf("--operator: %w", err)
			}
			cmd.SetContext(ctxutil.WithUserID(cmd.Context(), id))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&operator, "operator", os.Getenv("TOPICCTL_OPERATOR"), "UUID of the acting operator recorded on review events")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withContainer connects to storage, runs fn and releases the connections.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	ctx := cmd.Context()
	c, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

func parseTopicID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid topic id %q: %w", s, err)
	}
	return id, nil
}
