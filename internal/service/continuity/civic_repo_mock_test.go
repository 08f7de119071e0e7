package continuity

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ civicRepo = &civicRepoMock{}

type civicRepoMock struct {
	GetMotionFunc       func(ctx context.Context, id int64) (*domain.Motion, error)
	LinkedItemsFunc     func(ctx context.Context, topicID uuid.UUID) ([]domain.ScheduledItem, error)
	ResolvedMotionsFunc func(ctx context.Context, topicID uuid.UUID) ([]domain.Motion, error)

	calls struct {
		GetMotion []struct {
			Ctx context.Context
			Id  int64
		}
		LinkedItems []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
		ResolvedMotions []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
	}
	lockGetMotion       sync.RWMutex
	lockLinkedItems     sync.RWMutex
	lockResolvedMotions sync.RWMutex
}

func (mock *civicRepoMock) GetMotion(ctx context.Context, id int64) (*domain.Motion, error) {
	if mock.GetMotionFunc == nil {
		panic("civicRepoMock.GetMotionFunc: method is nil but civicRepo.GetMotion was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{Ctx: ctx, Id: id}
	mock.lockGetMotion.Lock()
	mock.calls.GetMotion = append(mock.calls.GetMotion, callInfo)
	mock.lockGetMotion.Unlock()
	return mock.GetMotionFunc(ctx, id)
}

func (mock *civicRepoMock) GetMotionCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockGetMotion.RLock()
	calls := mock.calls.GetMotion
	mock.lockGetMotion.RUnlock()
	return calls
}

func (mock *civicRepoMock) LinkedItems(ctx context.Context, topicID uuid.UUID) ([]domain.ScheduledItem, error) {
	if mock.LinkedItemsFunc == nil {
		panic("civicRepoMock.LinkedItemsFunc: method is nil but civicRepo.LinkedItems was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockLinkedItems.Lock()
	mock.calls.LinkedItems = append(mock.calls.LinkedItems, callInfo)
	mock.lockLinkedItems.Unlock()
	return mock.LinkedItemsFunc(ctx, topicID)
}

func (mock *civicRepoMock) LinkedItemsCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockLinkedItems.RLock()
	calls := mock.calls.LinkedItems
	mock.lockLinkedItems.RUnlock()
	return calls
}

func (mock *civicRepoMock) ResolvedMotions(ctx context.Context, topicID uuid.UUID) ([]domain.Motion, error) {
	if mock.ResolvedMotionsFunc == nil {
		panic("civicRepoMock.ResolvedMotionsFunc: method is nil but civicRepo.ResolvedMotions was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockResolvedMotions.Lock()
	mock.calls.ResolvedMotions = append(mock.calls.ResolvedMotions, callInfo)
	mock.lockResolvedMotions.Unlock()
	return mock.ResolvedMotionsFunc(ctx, topicID)
}

func (mock *civicRepoMock) ResolvedMotionsCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockResolvedMotions.RLock()
	calls := mock.calls.ResolvedMotions
	mock.lockResolvedMotions.RUnlock()
	return calls
}
