package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/civic-topics-backend/internal/service/continuity"
)

var _ continuityService = &continuityServiceMock{}

type continuityServiceMock struct {
	BackfillFunc       func(ctx context.Context, topicID *uuid.UUID) (continuity.BackfillResult, error)
	ByMeetingFunc      func(ctx context.Context, meetingID int64) ([]continuity.Result, error)
	MotionRecordedFunc func(ctx context.Context, motionID int64) ([]uuid.UUID, error)
	RecomputeFunc      func(ctx context.Context, topicID uuid.UUID) (continuity.Result, error)

	calls struct {
		Backfill []struct {
			Ctx     context.Context
			TopicID *uuid.UUID
		}
		ByMeeting []struct {
			Ctx       context.Context
			MeetingID int64
		}
		MotionRecorded []struct {
			Ctx      context.Context
			MotionID int64
		}
		Recompute []struct {
			Ctx     context.Context
			TopicID uuid.UUID
		}
	}
	lockBackfill       sync.RWMutex
	lockByMeeting      sync.RWMutex
	lockMotionRecorded sync.RWMutex
	lockRecompute      sync.RWMutex
}

func (mock *continuityServiceMock) Backfill(ctx context.Context, topicID *uuid.UUID) (continuity.BackfillResult, error) {
	if mock.BackfillFunc == nil {
		panic("continuityServiceMock.BackfillFunc: method is nil but continuityService.Backfill was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID *uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockBackfill.Lock()
	mock.calls.Backfill = append(mock.calls.Backfill, callInfo)
	mock.lockBackfill.Unlock()
	return mock.BackfillFunc(ctx, topicID)
}

func (mock *continuityServiceMock) BackfillCalls() []struct {
	Ctx     context.Context
	TopicID *uuid.UUID
} {
	mock.lockBackfill.RLock()
	calls := mock.calls.Backfill
	mock.lockBackfill.RUnlock()
	return calls
}

func (mock *continuityServiceMock) ByMeeting(ctx context.Context, meetingID int64) ([]continuity.Result, error) {
	if mock.ByMeetingFunc == nil {
		panic("continuityServiceMock.ByMeetingFunc: method is nil but continuityService.ByMeeting was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		MeetingID int64
	}{Ctx: ctx, MeetingID: meetingID}
	mock.lockByMeeting.Lock()
	mock.calls.ByMeeting = append(mock.calls.ByMeeting, callInfo)
	mock.lockByMeeting.Unlock()
	return mock.ByMeetingFunc(ctx, meetingID)
}

func (mock *continuityServiceMock) ByMeetingCalls() []struct {
	Ctx       context.Context
	MeetingID int64
} {
	mock.lockByMeeting.RLock()
	calls := mock.calls.ByMeeting
	mock.lockByMeeting.RUnlock()
	return calls
}

func (mock *continuityServiceMock) MotionRecorded(ctx context.Context, motionID int64) ([]uuid.UUID, error) {
	if mock.MotionRecordedFunc == nil {
		panic("continuityServiceMock.MotionRecordedFunc: method is nil but continuityService.MotionRecorded was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		MotionID int64
	}{Ctx: ctx, MotionID: motionID}
	mock.lockMotionRecorded.Lock()
	mock.calls.MotionRecorded = append(mock.calls.MotionRecorded, callInfo)
	mock.lockMotionRecorded.Unlock()
	return mock.MotionRecordedFunc(ctx, motionID)
}

func (mock *continuityServiceMock) MotionRecordedCalls() []struct {
	Ctx      context.Context
	MotionID int64
} {
	mock.lockMotionRecorded.RLock()
	calls := mock.calls.MotionRecorded
	mock.lockMotionRecorded.RUnlock()
	return calls
}

func (mock *continuityServiceMock) Recompute(ctx context.Context, topicID uuid.UUID) (continuity.Result, error) {
	if mock.RecomputeFunc == nil {
		panic("continuityServiceMock.RecomputeFunc: method is nil but continuityService.Recompute was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID uuid.UUID
	}{Ctx: ctx, TopicID: topicID}
	mock.lockRecompute.Lock()
	mock.calls.Recompute = append(mock.calls.Recompute, callInfo)
	mock.lockRecompute.Unlock()
	return mock.RecomputeFunc(ctx, topicID)
}

func (mock *continuityServiceMock) RecomputeCalls() []struct {
	Ctx     context.Context
	TopicID uuid.UUID
} {
	mock.lockRecompute.RLock()
	calls := mock.calls.Recompute
	mock.lockRecompute.RUnlock()
	return calls
}
