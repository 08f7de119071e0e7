package triage

import (
	"context"
	"sync"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	GetByNameFunc    func(ctx context.Context, name string) (*domain.Topic, error)
	ListProposedFunc func(ctx context.Context, limit int) ([]*domain.Topic, error)
	ListRefsFunc     func(ctx context.Context) ([]domain.TopicRef, error)

	calls struct {
		GetByName []struct {
			Ctx  context.Context
			Name string
		}
		ListProposed []struct {
			Ctx   context.Context
			Limit int
		}
		ListRefs []struct {
			Ctx context.Context
		}
	}
	lockGetByName    sync.RWMutex
	lockListProposed sync.RWMutex
	lockListRefs     sync.RWMutex
}

func (mock *topicRepoMock) GetByName(ctx context.Context, name string) (*domain.Topic, error) {
	if mock.GetByNameFunc == nil {
		panic("topicRepoMock.GetByNameFunc: method is nil but topicRepo.GetByName was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockGetByName.Lock()
	mock.calls.GetByName = append(mock.calls.GetByName, callInfo)
	mock.lockGetByName.Unlock()
	return mock.GetByNameFunc(ctx, name)
}

func (mock *topicRepoMock) GetByNameCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockGetByName.RLock()
	calls := mock.calls.GetByName
	mock.lockGetByName.RUnlock()
	return calls
}

func (mock *topicRepoMock) ListProposed(ctx context.Context, limit int) ([]*domain.Topic, error) {
	if mock.ListProposedFunc == nil {
		panic("topicRepoMock.ListProposedFunc: method is nil but topicRepo.ListProposed was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockListProposed.Lock()
	mock.calls.ListProposed = append(mock.calls.ListProposed, callInfo)
	mock.lockListProposed.Unlock()
	return mock.ListProposedFunc(ctx, limit)
}

func (mock *topicRepoMock) ListProposedCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockListProposed.RLock()
	calls := mock.calls.ListProposed
	mock.lockListProposed.RUnlock()
	return calls
}

func (mock *topicRepoMock) ListRefs(ctx context.Context) ([]domain.TopicRef, error) {
	if mock.ListRefsFunc == nil {
		panic("topicRepoMock.ListRefsFunc: method is nil but topicRepo.ListRefs was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListRefs.Lock()
	mock.calls.ListRefs = append(mock.calls.ListRefs, callInfo)
	mock.lockListRefs.Unlock()
	return mock.ListRefsFunc(ctx)
}

func (mock *topicRepoMock) ListRefsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListRefs.RLock()
	calls := mock.calls.ListRefs
	mock.lockListRefs.RUnlock()
	return calls
}
