package governance

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	CreateAliasFunc     func(ctx context.Context, topicID uuid.UUID, name string) (*domain.TopicAlias, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	LockForUpdateFunc   func(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.Topic, error)
	ReassignAliasesFunc func(ctx context.Context, from uuid.UUID, to uuid.UUID) (int, error)
	UpdateStatusFunc    func(ctx context.Context, id uuid.UUID, status domain.TopicStatus) (bool, error)

	calls struct {
		CreateAlias []struct {
			Ctx     context.Context
			TopicID uuid.UUID
			Name    string
		}
		Delete []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		LockForUpdate []struct {
			Ctx context.Context
			Ids []uuid.UUID
		}
		ReassignAliases []struct {
			Ctx  context.Context
			From uuid.UUID
			To   uuid.UUID
		}
		UpdateStatus []struct {
			Ctx    context.Context
			Id     uuid.UUID
			Status domain.TopicStatus
		}
	}
	lockCreateAlias     sync.RWMutex
	lockDelete          sync.RWMutex
	lockLockForUpdate   sync.RWMutex
	lockReassignAliases sync.RWMutex
	lockUpdateStatus    sync.RWMutex
}

func (mock *topicRepoMock) CreateAlias(ctx context.Context, topicID uuid.UUID, name string) (*domain.TopicAlias, error) {
	if mock.CreateAliasFunc == nil {
		panic("topicRepoMock.CreateAliasFunc: method is nil but topicRepo.CreateAlias was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
		Name    string
	}{Ctx: ctx, TopicID: topicID, Name: name}
	mock.lockCreateAlias.Lock()
	mock.calls.CreateAlias = append(mock.calls.CreateAlias, callInfo)
	mock.lockCreateAlias.Unlock()
	return mock.CreateAliasFunc(ctx, topicID, name)
}

func (mock *topicRepoMock) CreateAliasCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
	Name    string
} {
	mock.lockCreateAlias.RLock()
	calls := mock.calls.CreateAlias
	mock.lockCreateAlias.RUnlock()
	return calls
}

func (mock *topicRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("topicRepoMock.DeleteFunc: method is nil but topicRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *topicRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
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

func (mock *topicRepoMock) ReassignAliases(ctx context.Context, from uuid.UUID, to uuid.UUID) (int, error) {
	if mock.ReassignAliasesFunc == nil {
		panic("topicRepoMock.ReassignAliasesFunc: method is nil but topicRepo.ReassignAliases was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From uuid.UUID
		To   uuid.UUID
	}{Ctx: ctx, From: from, To: to}
	mock.lockReassignAliases.Lock()
	mock.calls.ReassignAliases = append(mock.calls.ReassignAliases, callInfo)
	mock.lockReassignAliases.Unlock()
	return mock.ReassignAliasesFunc(ctx, from, to)
}

func (mock *topicRepoMock) ReassignAliasesCalls() []struct {
	Ctx  context.Context
	From uuid.UUID
	To   uuid.UUID
} {
	mock.lockReassignAliases.RLock()
	calls := mock.calls.ReassignAliases
	mock.lockReassignAliases.RUnlock()
	return calls
}

func (mock *topicRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TopicStatus) (bool, error) {
	if mock.UpdateStatusFunc == nil {
		panic("topicRepoMock.UpdateStatusFunc: method is nil but topicRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		Status domain.TopicStatus
	}{Ctx: ctx, Id: id, Status: status}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status)
}

func (mock *topicRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	Status domain.TopicStatus
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
