// Command worker consumes background tasks (continuity updates, topic
// extraction, auto triage, motion activity, backfills) from the Redis queue
// and serves /live, /ready and /health.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/civic-topics-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Printf("worker: %v", err)
		os.Exit(1)
	}
}
