package continuity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	AdvanceLastActivityFunc func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	ListIDsFunc             func(ctx context.Context) ([]uuid.UUID, error)
	LockForUpdateFunc       func(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.Topic, error)
	UpdateLifecycleFunc     func(ctx context.Context, id uuid.UUID, status domain.LifecycleStatus) error
	UpdateTemporalFunc      func(ctx context.Context, id uuid.UUID, s domain.TemporalSummary) error

	calls struct {
		AdvanceLastActivity []struct {
			Ctx context.Context
			Id  uuid.UUID
			At  time.Time
		}
		ListIDs []struct {
			Ctx context.Context
		}
		LockForUpdate []struct {
			Ctx context.Context
			Ids []uuid.UUID
		}
		UpdateLifecycle []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Status domain.LifecycleStatus
		}
		UpdateTemporal []struct {
			Ctx context.Context
			Id  uuid.UUID
			S   domain.TemporalSummary
		}
	}
	lockAdvanceLastActivity sync.RWMutex
	lockListIDs             sync.RWMutex
	lockLockForUpdate       sync.RWMutex
	lockUpdateLifecycle     sync.RWMutex
	lockUpdateTemporal      sync.RWMutex
}

func (mock *topicRepoMock) AdvanceLastActivity(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	if mock.AdvanceLastActivityFunc == nil {
		panic("topicRepoMock.AdvanceLastActivityFunc: method is nil but topicRepo.AdvanceLastActivity was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		At  time.Time
	}{Ctx: ctx, Id: id, At: at}
	mock.lockAdvanceLastActivity.Lock()
	mock.calls.AdvanceLastActivity = append(mock.calls.AdvanceLastActivity, callInfo)
	mock.lockAdvanceLastActivity.Unlock()
	return mock.AdvanceLastActivityFunc(ctx, id, at)
}

func (mock *topicRepoMock) AdvanceLastActivityCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	At  time.Time
} {
	mock.lockAdvanceLastActivity.RLock()
	calls := mock.calls.AdvanceLastActivity
	mock.lockAdvanceLastActivity.RUnlock()
	return calls
}

func (mock *topicRepoMock) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	if mock.ListIDsFunc == nil {
		panic("topicRepoMock.ListIDsFunc: method is nil but topicRepo.ListIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListIDs.Lock()
	mock.calls.ListIDs = append(mock.calls.ListIDs, callInfo)
	mock.lockListIDs.Unlock()
	return mock.ListIDsFunc(ctx)
}

func (mock *topicRepoMock) ListIDsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListIDs.RLock()
	calls := mock.calls.ListIDs
	mock.lockListIDs.RUnlock()
	return calls
}

func (mock *topicRepoMock) LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.Topic, error) {
	if mock.LockForUpdateFunc == nil {
		panic("topicRepoMock.LockForUpdateFunc: method is nil but topicRepo.LockForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []uuid.UUID
	}{Ctx: ctx, Ids: ids}
	mock.lockLockForUpdate.Lock()
	mock.calls.LockForUpdate = append(mock.calls.LockForUpdate, callInfo)
	mock.lockLockForUpdate.Unlock()
	return mock.LockForUpdateFunc(ctx, ids...)
}

func (mock *topicRepoMock) LockForUpdateCalls() []struct {
	Ctx context.Context
	Ids []uuid.UUID
} {
	mock.lockLockForUpdate.RLock()
	calls := mock.calls.LockForUpdate
	mock.lockLockForUpdate.RUnlock()
	return calls
}

func (mock *topicRepoMock) UpdateLifecycle(ctx context.Context, id uuid.UUID, status domain.LifecycleStatus) error {
	if mock.UpdateLifecycleFunc == nil {
		panic("topicRepoMock.UpdateLifecycleFunc: method is nil but topicRepo.UpdateLifecycle was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Status domain.LifecycleStatus
	}{Ctx: ctx, Id: id, Status: status}
	mock.lockUpdateLifecycle.Lock()
	mock.calls.UpdateLifecycle = append(mock.calls.UpdateLifecycle, callInfo)
	mock.lockUpdateLifecycle.Unlock()
	return mock.UpdateLifecycleFunc(ctx, id, status)
}

func (mock *topicRepoMock) UpdateLifecycleCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Status domain.LifecycleStatus
} {
	mock.lockUpdateLifecycle.RLock()
	calls := mock.calls.UpdateLifecycle
	mock.lockUpdateLifecycle.RUnlock()
	return calls
}

func (mock *topicRepoMock) UpdateTemporal(ctx context.Context, id uuid.UUID, s domain.TemporalSummary) error {
	if mock.UpdateTemporalFunc == nil {
		panic("topicRepoMock.UpdateTemporalFunc: method is nil but topicRepo.UpdateTemporal was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
		S   domain.TemporalSummary
	}{Ctx: ctx, Id: id, S: s}
	mock.lockUpdateTemporal.Lock()
	mock.calls.UpdateTemporal = append(mock.calls.UpdateTemporal, callInfo)
	mock.lockUpdateTemporal.Unlock()
	return mock.UpdateTemporalFunc(ctx, id, s)
}

func (mock *topicRepoMock) UpdateTemporalCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
	S   domain.TemporalSummary
} {
	mock.lockUpdateTemporal.RLock()
	calls := mock.calls.UpdateTemporal
	mock.lockUpdateTemporal.RUnlock()
	return calls
}
