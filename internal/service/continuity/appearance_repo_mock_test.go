package continuity

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ appearanceRepo = &appearanceRepoMock{}

type appearanceRepoMock struct {
	CreateFunc               func(ctx context.Context, a domain.TopicAppearance) (bool, error)
	DeleteByTopicFunc        func(ctx context.Context, topicID uuid.UUID) (int, error)
	ListByTopicFunc          func(ctx context.Context, topicID uuid.UUID) ([]domain.TopicAppearance, error)
	TopicIDsByAgendaItemFunc func(ctx context.Context, agendaItemID int64) ([]uuid.UUID, error)
	TopicIDsByMeetingFunc    func(ctx context.Context, meetingID int64) ([]uuid.UUID, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			A   domain.TopicAppearance
		}
		DeleteByTopic []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
		ListByTopic []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
		TopicIDsByAgendaItem []struct {
			Ctx          context.Context
			AgendaItemID int64
		}
		TopicIDsByMeeting []struct {
			Ctx       context.Context
			MeetingID int64
		}
	}
	lockCreate               sync.RWMutex
	lockDeleteByTopic        sync.RWMutex
	lockListByTopic          sync.RWMutex
	lockTopicIDsByAgendaItem sync.RWMutex
	lockTopicIDsByMeeting    sync.RWMutex
}

func (mock *appearanceRepoMock) Create(ctx context.Context, a domain.TopicAppearance) (bool, error) {
	if mock.CreateFunc == nil {
		panic("appearanceRepoMock.CreateFunc: method is nil but appearanceRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.TopicAppearance
	}{Ctx: ctx, A: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *appearanceRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   domain.TopicAppearance
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *appearanceRepoMock) DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	if mock.DeleteByTopicFunc == nil {
		panic("appearanceRepoMock.DeleteByTopicFunc: method is nil but appearanceRepo.DeleteByTopic was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockDeleteByTopic.Lock()
	mock.calls.DeleteByTopic = append(mock.calls.DeleteByTopic, callInfo)
	mock.lockDeleteByTopic.Unlock()
	return mock.DeleteByTopicFunc(ctx, topicID)
}

func (mock *appearanceRepoMock) DeleteByTopicCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockDeleteByTopic.RLock()
	calls := mock.calls.DeleteByTopic
	mock.lockDeleteByTopic.RUnlock()
	return calls
}

func (mock *appearanceRepoMock) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicAppearance, error) {
	if mock.ListByTopicFunc == nil {
		panic("appearanceRepoMock.ListByTopicFunc: method is nil but appearanceRepo.ListByTopic was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockListByTopic.Lock()
	mock.calls.ListByTopic = append(mock.calls.ListByTopic, callInfo)
	mock.lockListByTopic.Unlock()
	return mock.ListByTopicFunc(ctx, topicID)
}

func (mock *appearanceRepoMock) ListByTopicCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockListByTopic.RLock()
	calls := mock.calls.ListByTopic
	mock.lockListByTopic.RUnlock()
	return calls
}

func (mock *appearanceRepoMock) TopicIDsByAgendaItem(ctx context.Context, agendaItemID int64) ([]uuid.UUID, error) {
	if mock.TopicIDsByAgendaItemFunc == nil {
		panic("appearanceRepoMock.TopicIDsByAgendaItemFunc: method is nil but appearanceRepo.TopicIDsByAgendaItem was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		AgendaItemID int64
	}{Ctx: ctx, AgendaItemID: agendaItemID}
	mock.lockTopicIDsByAgendaItem.Lock()
	mock.calls.TopicIDsByAgendaItem = append(mock.calls.TopicIDsByAgendaItem, callInfo)
	mock.lockTopicIDsByAgendaItem.Unlock()
	return mock.TopicIDsByAgendaItemFunc(ctx, agendaItemID)
}

func (mock *appearanceRepoMock) TopicIDsByAgendaItemCalls() []struct {
	Ctx          context.Context
	AgendaItemID int64
} {
	mock.lockTopicIDsByAgendaItem.RLock()
	calls := mock.calls.TopicIDsByAgendaItem
	mock.lockTopicIDsByAgendaItem.RUnlock()
	return calls
}

func (mock *appearanceRepoMock) TopicIDsByMeeting(ctx context.Context, meetingID int64) ([]uuid.UUID, error) {
	if mock.TopicIDsByMeetingFunc == nil {
		panic("appearanceRepoMock.TopicIDsByMeetingFunc: method is nil but appearanceRepo.TopicIDsByMeeting was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		MeetingID int64
	}{Ctx: ctx, MeetingID: meetingID}
	mock.lockTopicIDsByMeeting.Lock()
	mock.calls.TopicIDsByMeeting = append(mock.calls.TopicIDsByMeeting, callInfo)
	mock.lockTopicIDsByMeeting.Unlock()
	return mock.TopicIDsByMeetingFunc(ctx, meetingID)
}

func (mock *appearanceRepoMock) TopicIDsByMeetingCalls() []struct {
	Ctx       context.Context
	MeetingID int64
} {
	mock.lockTopicIDsByMeeting.RLock()
	calls := mock.calls.TopicIDsByMeeting
	mock.lockTopicIDsByMeeting.RUnlock()
	return calls
}
