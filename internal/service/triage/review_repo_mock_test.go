package triage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ reviewRepo = &reviewRepoMock{}

type reviewRepoMock struct {
	ReviewedTopicsFunc func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	calls struct {
		ReviewedTopics []struct {
			Ctx context.Context
			Ids []uuid.UUID
		}
	}
	lockReviewedTopics sync.RWMutex
}

func (mock *reviewRepoMock) ReviewedTopics(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	if mock.ReviewedTopicsFunc == nil {
		panic("reviewRepoMock.ReviewedTopicsFunc: method is nil but reviewRepo.ReviewedTopics was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []uuid.UUID
	}{Ctx: ctx, Ids: ids}
	mock.lockReviewedTopics.Lock()
	mock.calls.ReviewedTopics = append(mock.calls.ReviewedTopics, callInfo)
	mock.lockReviewedTopics.Unlock()
	return mock.ReviewedTopicsFunc(ctx, ids)
}

func (mock *reviewRepoMock) ReviewedTopicsCalls() []struct {
	Ctx context.Context
	Ids []uuid.UUID
} {
	mock.lockReviewedTopics.RLock()
	calls := mock.calls.ReviewedTopics
	mock.lockReviewedTopics.RUnlock()
	return calls
}
