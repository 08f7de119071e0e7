// Package redisqueue implements the background task queue on Redis.
//
// Each named queue is a list consumed with BRPOP. Delayed tasks wait in a
// sorted set scored by their due time (unix milliseconds) until Promote
// moves them onto the list.
package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/civic-topics-backend/internal/config"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

const promoteBatch = 100

// promoteScript atomically moves due members of a delayed set to the head of
// the ready list. KEYS[1] delayed set, KEYS[2] ready list, ARGV[1] now ms.
var promoteScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, ARGV[2])
for _, member in ipairs(due) do
  redis.call('ZREM', KEYS[1], member)
  redis.call('LPUSH', KEYS[2], member)
end
return #due
`)

// Queue is a Redis-backed task queue.
type Queue struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg config.RedisConfig) (*Queue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client, cfg.KeyPrefix), nil
}

// NewWithClient creates a queue from an existing Redis client.
func NewWithClient(client *redis.Client, prefix string) *Queue {
	return &Queue{client: client, prefix: prefix, now: time.Now}
}

func (q *Queue) readyKey(queue string) string   { return q.prefix + "queue:" + queue }
func (q *Queue) delayedKey(queue string) string { return q.prefix + "delayed:" + queue }

// Enqueue makes a task available immediately on its type's queue.
func (q *Queue) Enqueue(ctx context.Context, task domain.Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task %s: %w", task.ID, err)
	}
	if err := q.client.LPush(ctx, q.readyKey(task.Type.Queue()), payload).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type, err)
	}
	return nil
}

// EnqueueIn schedules a task to become available after delay.
func (q *Queue) EnqueueIn(ctx context.Context, task domain.Task, delay time.Duration) error {
	if delay <= 0 {
		return q.Enqueue(ctx, task)
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task %s: %w", task.ID, err)
	}
	due := q.now().Add(delay).UnixMilli()
	err = q.client.ZAdd(ctx, q.delayedKey(task.Type.Queue()), redis.Z{Score: float64(due), Member: payload}).Err()
	if err != nil {
		return fmt.Errorf("schedule %s: %w", task.Type, err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next task on queue. It returns nil
// and no error when the timeout expires without a task.
func (q *Queue) Dequeue(ctx context.Context, queue string, timeout time.Duration) (*domain.Task, error) {
	res, err := q.client.BRPop(ctx, timeout, q.readyKey(queue)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue %s: %w", queue, err)
	}

	// res is [key, value].
	var task domain.Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("decode task from %s: %w", queue, err)
	}
	return &task, nil
}

// Promote moves delayed tasks that are due onto the ready list and returns
// how many were moved.
func (q *Queue) Promote(ctx context.Context, queue string) (int, error) {
	n, err := promoteScript.Run(ctx, q.client,
		[]string{q.delayedKey(queue), q.readyKey(queue)},
		q.now().UnixMilli(), promoteBatch,
	).Int()
	if err != nil {
		return 0, fmt.Errorf("promote %s: %w", queue, err)
	}
	return n, nil
}

// Len returns the number of ready tasks on queue.
func (q *Queue) Len(ctx context.Context, queue string) (int64, error) {
	return q.client.LLen(ctx, q.readyKey(queue)).Result()
}

// DelayedLen returns the number of scheduled tasks on queue.
func (q *Queue) DelayedLen(ctx context.Context, queue string) (int64, error) {
	return q.client.ZCard(ctx, q.delayedKey(queue)).Result()
}

// Ping checks the Redis connection.
func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close releases the Redis client.
func (q *Queue) Close() error {
	return q.client.Close()
}
