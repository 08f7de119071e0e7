package identity

import (
	"context"
	"sync"
)

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	LockFunc    func(ctx context.Context, namespace string, key string) error
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		Lock []struct {
			Ctx       context.Context
			Namespace string
			Key       string
		}
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockLock    sync.RWMutex
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) Lock(ctx context.Context, namespace string, key string) error {
	if mock.LockFunc == nil {
		panic("txManagerMock.LockFunc: method is nil but txManager.Lock was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Namespace string
		Key       string
	}{Ctx: ctx, Namespace: namespace, Key: key}
	mock.lockLock.Lock()
	mock.calls.Lock = append(mock.calls.Lock, callInfo)
	mock.lockLock.Unlock()
	return mock.LockFunc(ctx, namespace, key)
}

func (mock *txManagerMock) LockCalls() []struct {
	Ctx       context.Context
	Namespace string
	Key       string
} {
	mock.lockLock.RLock()
	calls := mock.calls.Lock
	mock.lockLock.RUnlock()
	return calls
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
