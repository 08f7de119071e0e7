package identity

import (
	"context"
	"sync"
)

var _ blocklist = &blocklistMock{}

type blocklistMock struct {
	ContainsFunc func(ctx context.Context, name string) (bool, error)

	calls struct {
		Contains []struct {
			Ctx  context.Context
			Name string
		}
	}
	lockContains sync.RWMutex
}

func (mock *blocklistMock) Contains(ctx context.Context, name string) (bool, error) {
	if mock.ContainsFunc == nil {
		panic("blocklistMock.ContainsFunc: method is nil but blocklist.Contains was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockContains.Lock()
	mock.calls.Contains = append(mock.calls.Contains, callInfo)
	mock.lockContains.Unlock()
	return mock.ContainsFunc(ctx, name)
}

func (mock *blocklistMock) ContainsCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockContains.RLock()
	calls := mock.calls.Contains
	mock.lockContains.RUnlock()
	return calls
}
