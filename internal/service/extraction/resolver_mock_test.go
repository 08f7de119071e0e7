package extraction

import (
	"context"
	"sync"

	"github.com/heartmarshall/civic-topics-backend/internal/service/identity"
)

var _ resolver = &resolverMock{}

type resolverMock struct {
	ResolveFunc func(ctx context.Context, rawName string) (identity.Resolution, error)

	calls struct {
		Resolve []struct {
			Ctx     context.Context
			RawName string
		}
	}
	lockResolve sync.RWMutex
}

func (mock *resolverMock) Resolve(ctx context.Context, rawName string) (identity.Resolution, error) {
	if mock.ResolveFunc == nil {
		panic("resolverMock.ResolveFunc: method is nil but resolver.Resolve was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		RawName string
	}{Ctx: ctx, RawName: rawName}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, rawName)
}

func (mock *resolverMock) ResolveCalls() []struct {
	Ctx     context.Context
	RawName string
} {
	mock.lockResolve.RLock()
	calls := mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}
