package worker

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ scheduler = &schedulerMock{}

type schedulerMock struct {
	EnqueueFunc   func(ctx context.Context, task domain.Task) error
	EnqueueInFunc func(ctx context.Context, task domain.Task, delay time.Duration) error

	calls struct {
		Enqueue []struct {
			Ctx  context.Context
			Task domain.Task
		}
		EnqueueIn []struct {
			Ctx   context.Context
			Task  domain.Task
			Delay time.Duration
		}
	}
	lockEnqueue   sync.RWMutex
	lockEnqueueIn sync.RWMutex
}

func (mock *schedulerMock) Enqueue(ctx context.Context, task domain.Task) error {
	if mock.EnqueueFunc == nil {
		panic("schedulerMock.EnqueueFunc: method is nil but scheduler.Enqueue was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Task domain.Task
	}{Ctx: ctx, Task: task}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, task)
}

func (mock *schedulerMock) EnqueueCalls() []struct {
	Ctx  context.Context
	Task domain.Task
} {
	mock.lockEnqueue.RLock()
	calls := mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}

func (mock *schedulerMock) EnqueueIn(ctx context.Context, task domain.Task, delay time.Duration) error {
	if mock.EnqueueInFunc == nil {
		panic("schedulerMock.EnqueueInFunc: method is nil but scheduler.EnqueueIn was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Task  domain.Task
		Delay time.Duration
	}{Ctx: ctx, Task: task, Delay: delay}
	mock.lockEnqueueIn.Lock()
	mock.calls.EnqueueIn = append(mock.calls.EnqueueIn, callInfo)
	mock.lockEnqueueIn.Unlock()
	return mock.EnqueueInFunc(ctx, task, delay)
}

func (mock *schedulerMock) EnqueueInCalls() []struct {
	Ctx   context.Context
	Task  domain.Task
	Delay time.Duration
} {
	mock.lockEnqueueIn.RLock()
	calls := mock.calls.EnqueueIn
	mock.lockEnqueueIn.RUnlock()
	return calls
}
