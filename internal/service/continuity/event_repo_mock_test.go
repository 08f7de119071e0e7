package continuity

import (
	"context"
	"sync"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	InsertIfAbsentFunc func(ctx context.Context, e domain.StatusEvent) (bool, error)

	calls struct {
		InsertIfAbsent []struct {
			Ctx context.Context
			E   domain.StatusEvent
		}
	}
	lockInsertIfAbsent sync.RWMutex
}

func (mock *eventRepoMock) InsertIfAbsent(ctx context.Context, e domain.StatusEvent) (bool, error) {
	if mock.InsertIfAbsentFunc == nil {
		panic("eventRepoMock.InsertIfAbsentFunc: method is nil but eventRepo.InsertIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.StatusEvent
	}{Ctx: ctx, E: e}
	mock.lockInsertIfAbsent.Lock()
	mock.calls.InsertIfAbsent = append(mock.calls.InsertIfAbsent, callInfo)
	mock.lockInsertIfAbsent.Unlock()
	return mock.InsertIfAbsentFunc(ctx, e)
}

func (mock *eventRepoMock) InsertIfAbsentCalls() []struct {
	Ctx context.Context
	E   domain.StatusEvent
} {
	mock.lockInsertIfAbsent.RLock()
	calls := mock.calls.InsertIfAbsent
	mock.lockInsertIfAbsent.RUnlock()
	return calls
}
