package governance

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ linkRepo = &linkRepoMock{}

type linkRepoMock struct {
	MoveAppearancesFunc func(ctx context.Context, from uuid.UUID, to uuid.UUID) (int, int, error)
	MoveLinksFunc       func(ctx context.Context, from uuid.UUID, to uuid.UUID) (int, int, error)

	calls struct {
		MoveAppearances []struct {
			Ctx  context.Context
			From uuid.UUID
			To   uuid.UUID
		}
		MoveLinks []struct {
			Ctx  context.Context
			From uuid.UUID
			To   uuid.UUID
		}
	}
	lockMoveAppearances sync.RWMutex
	lockMoveLinks       sync.RWMutex
}

func (mock *linkRepoMock) MoveAppearances(ctx context.Context, from uuid.UUID, to uuid.UUID) (int, int, error) {
	if mock.MoveAppearancesFunc == nil {
		panic("linkRepoMock.MoveAppearancesFunc: method is nil but linkRepo.MoveAppearances was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From uuid.UUID
		To   uuid.UUID
	}{Ctx: ctx, From: from, To: to}
	mock.lockMoveAppearances.Lock()
	mock.calls.MoveAppearances = append(mock.calls.MoveAppearances, callInfo)
	mock.lockMoveAppearances.Unlock()
	return mock.MoveAppearancesFunc(ctx, from, to)
}

func (mock *linkRepoMock) MoveAppearancesCalls() []struct {
	Ctx  context.Context
	From uuid.UUID
	To   uuid.UUID
} {
	mock.lockMoveAppearances.RLock()
	calls := mock.calls.MoveAppearances
	mock.lockMoveAppearances.RUnlock()
	return calls
}

func (mock *linkRepoMock) MoveLinks(ctx context.Context, from uuid.UUID, to uuid.UUID) (int, int, error) {
	if mock.MoveLinksFunc == nil {
		panic("linkRepoMock.MoveLinksFunc: method is nil but linkRepo.MoveLinks was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From uuid.UUID
		To   uuid.UUID
	}{Ctx: ctx, From: from, To: to}
	mock.lockMoveLinks.Lock()
	mock.calls.MoveLinks = append(mock.calls.MoveLinks, callInfo)
	mock.lockMoveLinks.Unlock()
	return mock.MoveLinksFunc(ctx, from, to)
}

func (mock *linkRepoMock) MoveLinksCalls() []struct {
	Ctx  context.Context
	From uuid.UUID
	To   uuid.UUID
} {
	mock.lockMoveLinks.RLock()
	calls := mock.calls.MoveLinks
	mock.lockMoveLinks.RUnlock()
	return calls
}
