package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/civic-topics-backend/internal/config"
	"github.com/heartmarshall/civic-topics-backend/pkg/ctxutil"
)

// NewLogger creates a *slog.Logger based on the provided LogConfig
// and sets it as the default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output (production).
// Format "text" produces human-readable output with source info (development).
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Output is always os.Stderr. Records logged with a context carrying a task
// get task_id and task_type attributes.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewTaskHandler(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TaskHandler decorates records with the task stored in the context by
// ctxutil.WithTask.
type TaskHandler struct {
	next slog.Handler
}

// NewTaskHandler wraps next.
func NewTaskHandler(next slog.Handler) *TaskHandler {
	return &TaskHandler{next: next}
}

func (h *TaskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *TaskHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, typ, ok := ctxutil.TaskFromCtx(ctx); ok {
		r = r.Clone()
		r.AddAttrs(slog.String("task_id", id.String()), slog.String("task_type", typ))
	}
	return h.next.Handle(ctx, r)
}

func (h *TaskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TaskHandler{next: h.next.WithAttrs(attrs)}
}

func (h *TaskHandler) WithGroup(name string) slog.Handler {
	return &TaskHandler{next: h.next.WithGroup(name)}
}
