package triage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ linkRepo = &linkRepoMock{}

type linkRepoMock struct {
	LinkedAgendaItemsFunc func(ctx context.Context, topicID uuid.UUID, limit int) ([]domain.AgendaItem, error)

	calls struct {
		LinkedAgendaItems []struct {
			Ctx     context.Context
			TopicID uuid.UUID
			Limit   int
		}
	}
	lockLinkedAgendaItems sync.RWMutex
}

func (mock *linkRepoMock) LinkedAgendaItems(ctx context.Context, topicID uuid.UUID, limit int) ([]domain.AgendaItem, error) {
	if mock.LinkedAgendaItemsFunc == nil {
		panic("linkRepoMock.LinkedAgendaItemsFunc: method is nil but linkRepo.LinkedAgendaItems was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
		Limit   int
	}{Ctx: ctx, TopicID: topicID, Limit: limit}
	mock.lockLinkedAgendaItems.Lock()
	mock.calls.LinkedAgendaItems = append(mock.calls.LinkedAgendaItems, callInfo)
	mock.lockLinkedAgendaItems.Unlock()
	return mock.LinkedAgendaItemsFunc(ctx, topicID, limit)
}

func (mock *linkRepoMock) LinkedAgendaItemsCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
	Limit   int
} {
	mock.lockLinkedAgendaItems.RLock()
	calls := mock.calls.LinkedAgendaItems
	mock.lockLinkedAgendaItems.RUnlock()
	return calls
}
