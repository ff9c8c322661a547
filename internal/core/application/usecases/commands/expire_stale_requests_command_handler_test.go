package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewExpireStaleRequestsCommand(t *testing.T) {
	_, err := commands.NewExpireStaleRequestsCommand(0, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl")
	assert.Contains(t, err.Error(), "batch_size")
}

func TestExpireStaleRequestsCommandHandler_Handle(t *testing.T) {
	t.Run("cancels stale pending requests and skips lost races", func(t *testing.T) {
		// Given
		ctx := t.Context()
		stale := pendingRequest(t)
		raced := pendingRequest(t)
		winner := kernel.NewUUID()
		cmd, err := commands.NewExpireStaleRequestsCommand(30*time.Minute, 50)
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		publisher := new(MockEventPublisher)
		repo.On("List", ctx, mock.MatchedBy(func(f ports.RequestFilter) bool {
			return len(f.Statuses) == 1 && f.Statuses[0] == request.Pending &&
				f.Limit == 50 && f.CreatedBefore.Before(time.Now().Add(-29*time.Minute))
		})).Return([]*request.DeliveryRequest{stale, raced}, nil).Once()

		repo.On("Get", ctx, stale.ID()).Return(stale, nil).Once()
		repo.On("ConditionalUpdate", ctx, stale.ID(), request.State{Status: request.Pending},
			mock.MatchedBy(func(p ports.RequestPatch) bool { return p.Status == request.Cancelled })).
			Return(true, nil).Once()

		repo.On("Get", ctx, raced.ID()).Return(raced, nil).Once()
		repo.On("ConditionalUpdate", ctx, raced.ID(), mock.Anything, mock.Anything).Return(false, nil).Once()
		repo.On("Get", ctx, raced.ID()).
			Return(restoredRequest(t, raced.ID(), request.Accepted, &winner), nil).Once()

		publisher.On("Publish", ctx, mock.Anything).Once()

		h := commands.NewExpireStaleRequestsCommandHandler(repo, publisher, nil)

		// When
		result, err := h.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, commands.ExpiryResult{Expired: 1, Skipped: 1}, result)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("request accepted after listing is skipped and keeps its driver", func(t *testing.T) {
		// Given
		ctx := t.Context()
		stale := staleRequest(t)
		raced := staleRequest(t)
		winner := kernel.NewUUID()

		store := &acceptAfterList{
			RequestStore: memory.NewRequestStore(),
			t:            t,
			driverID:     winner,
			raced:        raced.ID(),
		}
		require.NoError(t, store.Add(ctx, stale))
		require.NoError(t, store.Add(ctx, raced))

		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []request.StatusChanged) bool {
			return len(events) == 1 && events[0].RequestID.IsEqual(stale.ID()) && events[0].To == request.Cancelled
		})).Once()

		cmd, err := commands.NewExpireStaleRequestsCommand(30*time.Minute, 10)
		require.NoError(t, err)
		h := commands.NewExpireStaleRequestsCommandHandler(store, publisher, nil)

		// When
		result, err := h.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, commands.ExpiryResult{Expired: 1, Skipped: 1}, result)

		got, err := store.Get(ctx, raced.ID())
		require.NoError(t, err)
		assert.Equal(t, request.Accepted, got.Status())
		require.NotNil(t, got.DriverID())
		assert.True(t, got.DriverID().IsEqual(winner))

		got, err = store.Get(ctx, stale.ID())
		require.NoError(t, err)
		assert.Equal(t, request.Cancelled, got.Status())
		publisher.AssertExpectations(t)
	})

	t.Run("store failure aborts the run", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewExpireStaleRequestsCommand(time.Minute, 10)
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		repo.On("List", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()
		h := commands.NewExpireStaleRequestsCommandHandler(repo, new(MockEventPublisher), nil)

		_, err = h.Handle(ctx, cmd)

		require.EqualError(t, err, "db down")
	})

	t.Run("vanished request is skipped", func(t *testing.T) {
		ctx := t.Context()
		gone := pendingRequest(t)
		cmd, err := commands.NewExpireStaleRequestsCommand(time.Minute, 10)
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		repo.On("List", ctx, mock.Anything).Return([]*request.DeliveryRequest{gone}, nil).Once()
		repo.On("Get", ctx, gone.ID()).Return(nil, errs.NewObjectNotFoundError("request", gone.ID())).Once()
		h := commands.NewExpireStaleRequestsCommandHandler(repo, new(MockEventPublisher), nil)

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
	})
}

// acceptAfterList lets a driver accept one request right after the expiry run has listed it.
type acceptAfterList struct {
	*memory.RequestStore
	t        *testing.T
	driverID kernel.UUID
	raced    kernel.UUID
}

func (s *acceptAfterList) List(ctx context.Context, filter ports.RequestFilter) ([]*request.DeliveryRequest, error) {
	listed, err := s.RequestStore.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	r, err := s.RequestStore.Get(ctx, s.raced)
	require.NoError(s.t, err)
	expected := r.State()
	require.NoError(s.t, r.Accept(s.driverID, time.Now()))
	applied, err := s.RequestStore.ConditionalUpdate(ctx, s.raced, expected, ports.PatchOf(r))
	require.NoError(s.t, err)
	require.True(s.t, applied)

	return listed, nil
}

func staleRequest(t *testing.T) *request.DeliveryRequest {
	t.Helper()
	createdAt := time.Now().Add(-time.Hour)
	r, err := request.RestoreDeliveryRequest(
		kernel.NewUUID(), accra, korleBu, 3, kernel.Car,
		request.Quote{DistanceKm: 5.28, Price: 11.34, EtaMinutes: 18},
		request.Pending, nil, createdAt, createdAt,
	)
	require.NoError(t, err)
	return r
}
