package governance

import (
	"context"
	"sync"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ reviewRepo = &reviewRepoMock{}

type reviewRepoMock struct {
	CreateFunc func(ctx context.Context, e *domain.ReviewEvent) (*domain.ReviewEvent, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			E   *domain.ReviewEvent
		}
	}
	lockCreate sync.RWMutex
}

func (mock *reviewRepoMock) Create(ctx context.Context, e *domain.ReviewEvent) (*domain.ReviewEvent, error) {
	if mock.CreateFunc == nil {
		panic("reviewRepoMock.CreateFunc: method is nil but reviewRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.ReviewEvent
	}{Ctx: ctx, E: e}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *reviewRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   *domain.ReviewEvent
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
