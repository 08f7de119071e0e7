package triage

import (
	"context"
	"sync"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ classifier = &classifierMock{}

type classifierMock struct {
	TriageFunc func(ctx context.Context, req domain.TriageRequest) (*domain.TriageResponse, error)

	calls struct {
		Triage []struct {
			Ctx context.Context
			Req domain.TriageRequest
		}
	}
	lockTriage sync.RWMutex
}

func (mock *classifierMock) Triage(ctx context.Context, req domain.TriageRequest) (*domain.TriageResponse, error) {
	if mock.TriageFunc == nil {
		panic("classifierMock.TriageFunc: method is nil but classifier.Triage was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.TriageRequest
	}{Ctx: ctx, Req: req}
	mock.lockTriage.Lock()
	mock.calls.Triage = append(mock.calls.Triage, callInfo)
	mock.lockTriage.Unlock()
	return mock.TriageFunc(ctx, req)
}

func (mock *classifierMock) TriageCalls() []struct {
	Ctx context.Context
	Req domain.TriageRequest
} {
	mock.lockTriage.RLock()
	calls := mock.calls.Triage
	mock.lockTriage.RUnlock()
	return calls
}
