// Package worker consumes background tasks from the queue and dispatches
// them to handlers by task type.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/civic-topics-backend/internal/config"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/pkg/ctxutil"
)

type queue interface {
	Enqueue(ctx context.Context, task domain.Task) error
	EnqueueIn(ctx context.Context, task domain.Task, delay time.Duration) error
	Dequeue(ctx context.Context, queue string, timeout time.Duration) (*domain.Task, error)
	Promote(ctx context.Context, queue string) (int, error)
}

// HandlerFunc processes one task. Returning an error schedules a retry.
type HandlerFunc func(ctx context.Context, task domain.Task) error

// Worker pulls tasks off the default queue with a fixed number of consumers.
type Worker struct {
	queue    queue
	handlers map[domain.TaskType]HandlerFunc
	cfg      config.WorkerConfig
	log      *slog.Logger
}

// New creates a worker with no handlers registered.
func New(log *slog.Logger, q queue, cfg config.WorkerConfig) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 5 * time.Second
	}
	if cfg.PromoteInterval <= 0 {
		cfg.PromoteInterval = time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Worker{
		queue:    q,
		handlers: make(map[domain.TaskType]HandlerFunc),
		cfg:      cfg,
		log:      log.With("component", "worker"),
	}
}

// Handle registers h for tasks of type typ. Registering a type twice
// replaces the earlier handler.
func (w *Worker) Handle(typ domain.TaskType, h HandlerFunc) {
	w.handlers[typ] = h
}

// Run consumes tasks until ctx is cancelled. It returns nil on a clean
// shutdown.
func (w *Worker) Run(ctx context.Context) error {
	w.log.InfoContext(ctx, "worker started",
		slog.Int("concurrency", w.cfg.Concurrency),
		slog.Int("max_attempts", w.cfg.MaxAttempts),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.promoteLoop(gctx) })
	for i := 0; i < w.cfg.Concurrency; i++ {
		g.Go(func() error { return w.consume(gctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	w.log.InfoContext(ctx, "worker stopped")
	return err
}

func (w *Worker) promoteLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PromoteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := w.queue.Promote(ctx, domain.QueueDefault)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.log.WarnContext(ctx, "promote delayed tasks", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				w.log.DebugContext(ctx, "promoted delayed tasks", slog.Int("count", n))
			}
		}
	}
}

func (w *Worker) consume(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		task, err := w.queue.Dequeue(ctx, domain.QueueDefault, w.cfg.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.WarnContext(ctx, "dequeue failed", slog.String("error", err.Error()))
			sleep(ctx, w.cfg.PollTimeout)
			continue
		}
		if task == nil {
			continue
		}

		w.Process(ctx, *task)
	}
}

// Process runs a single task and settles it: acknowledged on success or a
// missing record, re-enqueued with backoff on failure until MaxAttempts.
func (w *Worker) Process(ctx context.Context, task domain.Task) {
	ctx = ctxutil.WithTask(ctx, task.ID, task.Type.String())

	h, ok := w.handlers[task.Type]
	if !ok {
		w.log.WarnContext(ctx, "no handler registered for task type")
		return
	}

	start := time.Now()
	err := run(ctx, h, task)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		w.log.InfoContext(ctx, "task done", slog.Duration("duration", elapsed))
	case errors.Is(err, domain.ErrNotFound):
		w.log.WarnContext(ctx, "task target missing",
			slog.String("error", err.Error()),
		)
	case errors.Is(err, domain.ErrValidation):
		w.log.ErrorContext(ctx, "task rejected",
			slog.String("error", err.Error()),
		)
	default:
		w.retry(ctx, task, err)
	}
}

func (w *Worker) retry(ctx context.Context, task domain.Task, cause error) {
	next := task.Attempt + 1
	if next >= w.cfg.MaxAttempts {
		w.log.ErrorContext(ctx, "task failed permanently",
			slog.Int("attempt", next),
			slog.String("error", cause.Error()),
		)
		return
	}

	task.Attempt = next
	delay := w.cfg.RetryBackoff * time.Duration(next)
	if err := w.queue.EnqueueIn(ctx, task, delay); err != nil {
		w.log.ErrorContext(ctx, "requeue failed",
			slog.String("error", err.Error()),
			slog.String("cause", cause.Error()),
		)
		return
	}

	w.log.WarnContext(ctx, "task failed, retrying",
		slog.Int("attempt", next),
		slog.Duration("delay", delay),
		slog.String("error", cause.Error()),
	)
}

// run calls h, turning a panic into an error so the task is retried.
func run(ctx context.Context, h HandlerFunc, task domain.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, task)
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
