package extraction

import (
	"context"
	"sync"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var _ civicRepo = &civicRepoMock{}

type civicRepoMock struct {
	GetMeetingFunc      func(ctx context.Context, id int64) (*domain.Meeting, error)
	ListAgendaItemsFunc func(ctx context.Context, meetingID int64) ([]domain.AgendaItem, error)

	calls struct {
		GetMeeting []struct {
			Ctx context.Context
			Id  int64
		}
		ListAgendaItems []struct {
			Ctx       context.Context
			MeetingID int64
		}
	}
	lockGetMeeting      sync.RWMutex
	lockListAgendaItems sync.RWMutex
}

func (mock *civicRepoMock) GetMeeting(ctx context.Context, id int64) (*domain.Meeting, error) {
	if mock.GetMeetingFunc == nil {
		panic("civicRepoMock.GetMeetingFunc: method is nil but civicRepo.GetMeeting was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{Ctx: ctx, Id: id}
	mock.lockGetMeeting.Lock()
	mock.calls.GetMeeting = append(mock.calls.GetMeeting, callInfo)
	mock.lockGetMeeting.Unlock()
	return mock.GetMeetingFunc(ctx, id)
}

func (mock *civicRepoMock) GetMeetingCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockGetMeeting.RLock()
	calls := mock.calls.GetMeeting
	mock.lockGetMeeting.RUnlock()
	return calls
}

func (mock *civicRepoMock) ListAgendaItems(ctx context.Context, meetingID int64) ([]domain.AgendaItem, error) {
	if mock.ListAgendaItemsFunc == nil {
		panic("civicRepoMock.ListAgendaItemsFunc: method is nil but civicRepo.ListAgendaItems was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		MeetingID int64
	}{Ctx: ctx, MeetingID: meetingID}
	mock.lockListAgendaItems.Lock()
	mock.calls.ListAgendaItems = append(mock.calls.ListAgendaItems, callInfo)
	mock.lockListAgendaItems.Unlock()
	return mock.ListAgendaItemsFunc(ctx, meetingID)
}

func (mock *civicRepoMock) ListAgendaItemsCalls() []struct {
	Ctx       context.Context
	MeetingID int64
} {
	mock.lockListAgendaItems.RLock()
	calls := mock.calls.ListAgendaItems
	mock.lockListAgendaItems.RUnlock()
	return calls
}
