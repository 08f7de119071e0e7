package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey   ctxKey = "user_id"
	taskIDKey   ctxKey = "task_id"
	taskTypeKey ctxKey = "task_type"
)

// WithUserID stores the acting operator's ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the acting operator's ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithTask stores the ID and type of the task being processed.
func WithTask(ctx context.Context, id uuid.UUID, taskType string) context.Context {
	ctx = context.WithValue(ctx, taskIDKey, id)
	return context.WithValue(ctx, taskTypeKey, taskType)
}

// TaskFromCtx returns the task ID and type stored by WithTask.
// ok is false when the context carries no task.
func TaskFromCtx(ctx context.Context) (id uuid.UUID, taskType string, ok bool) {
	id, ok = ctx.Value(taskIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	taskType, _ = ctx.Value(taskTypeKey).(string)
	return id, taskType, true
}
