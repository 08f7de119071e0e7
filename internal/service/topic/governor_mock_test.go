package topic

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/governance"
)

var _ governor = &governorMock{}

type governorMock struct {
	ApplyFunc func(ctx context.Context, topicID uuid.UUID, action domain.ReviewAction, r governance.Review) (bool, error)
	MergeFunc func(ctx context.Context, sourceID uuid.UUID, targetID uuid.UUID, r governance.Review) (governance.MergeResult, error)

	calls struct {
		Apply []struct {
			Ctx     context.Context
			TopicID uuid.UUID
			Action  domain.ReviewAction
			R       governance.Review
		}
		Merge []struct {
			Ctx      context.Context
			SourceID uuid.UUID
			TargetID uuid.UUID
			R        governance.Review
		}
	}
	lockApply sync.RWMutex
	lockMerge sync.RWMutex
}

func (mock *governorMock) Apply(ctx context.Context, topicID uuid.UUID, action domain.ReviewAction, r governance.Review) (bool, error) {
	if mock.ApplyFunc == nil {
		panic("governorMock.ApplyFunc: method is nil but governor.Apply was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
		Action  domain.ReviewAction
		R       governance.Review
	}{Ctx: ctx, TopicID: topicID, Action: action, R: r}
	mock.lockApply.Lock()
	mock.calls.Apply = append(mock.calls.Apply, callInfo)
	mock.lockApply.Unlock()
	return mock.ApplyFunc(ctx, topicID, action, r)
}

func (mock *governorMock) ApplyCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
	Action  domain.ReviewAction
	R       governance.Review
} {
	mock.lockApply.RLock()
	calls := mock.calls.Apply
	mock.lockApply.RUnlock()
	return calls
}

func (mock *governorMock) Merge(ctx context.Context, sourceID uuid.UUID, targetID uuid.UUID, r governance.Review) (governance.MergeResult, error) {
	if mock.MergeFunc == nil {
		panic("governorMock.MergeFunc: method is nil but governor.Merge was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		SourceID uuid.UUID
		TargetID uuid.UUID
		R        governance.Review
	}{Ctx: ctx, SourceID: sourceID, TargetID: targetID, R: r}
	mock.lockMerge.Lock()
	mock.calls.Merge = append(mock.calls.Merge, callInfo)
	mock.lockMerge.Unlock()
	return mock.MergeFunc(ctx, sourceID, targetID, r)
}

func (mock *governorMock) MergeCalls() []struct {
	Ctx      context.Context
	SourceID uuid.UUID
	TargetID uuid.UUID
	R        governance.Review
} {
	mock.lockMerge.RLock()
	calls := mock.calls.Merge
	mock.lockMerge.RUnlock()
	return calls
}
