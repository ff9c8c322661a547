package commands_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestAcceptRequestCommandHandler_Handle(t *testing.T) {
	t.Run("available driver takes a pending request", func(t *testing.T) {
		// Given
		ctx := t.Context()
		r := pendingRequest(t)
		d := testDriver(t, true)
		cmd, err := commands.NewAcceptRequestCommand(r.ID(), d.ID())
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		directory := new(MockDriverDirectory)
		publisher := new(MockEventPublisher)
		metrics := new(MockLifecycleMetrics)

		directory.On("Get", ctx, d.ID()).Return(d, nil).Once()
		repo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		repo.On("ConditionalUpdate", ctx, r.ID(), request.State{Status: request.Pending},
			mock.MatchedBy(func(p ports.RequestPatch) bool {
				return p.Status == request.Accepted && p.DriverID != nil && p.DriverID.IsEqual(d.ID())
			})).Return(true, nil).Once()
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []request.StatusChanged) bool {
			return len(events) == 1 && events[0].To == request.Accepted
		})).Once()
		metrics.On("StatusChanged", request.Pending, request.Accepted).Once()

		h := commands.NewAcceptRequestCommandHandler(repo, directory, publisher, metrics)

		// When
		got, err := h.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, request.Accepted, got.Status())
		assert.True(t, got.DriverID().IsEqual(d.ID()))
		assert.InDelta(t, 11.34, got.Price(), 1e-9)
		repo.AssertExpectations(t)
		directory.AssertExpectations(t)
		publisher.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("unknown driver is not found", func(t *testing.T) {
		ctx := t.Context()
		driverID := kernel.NewUUID()
		cmd, err := commands.NewAcceptRequestCommand(kernel.NewUUID(), driverID)
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		directory := new(MockDriverDirectory)
		directory.On("Get", ctx, driverID).Return(nil, errs.NewObjectNotFoundError("driver", driverID)).Once()

		h := commands.NewAcceptRequestCommandHandler(repo, directory, new(MockEventPublisher), nil)

		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("unavailable driver is a conflict", func(t *testing.T) {
		ctx := t.Context()
		d := testDriver(t, false)
		cmd, err := commands.NewAcceptRequestCommand(kernel.NewUUID(), d.ID())
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		directory := new(MockDriverDirectory)
		directory.On("Get", ctx, d.ID()).Return(d, nil).Once()

		h := commands.NewAcceptRequestCommandHandler(repo, directory, new(MockEventPublisher), nil)

		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertNotCalled(t, "ConditionalUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing the race is a conflict", func(t *testing.T) {
		// Given
		ctx := t.Context()
		r := pendingRequest(t)
		d := testDriver(t, true)
		winner := kernel.NewUUID()
		cmd, err := commands.NewAcceptRequestCommand(r.ID(), d.ID())
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		directory := new(MockDriverDirectory)
		publisher := new(MockEventPublisher)
		metrics := new(MockLifecycleMetrics)

		directory.On("Get", ctx, d.ID()).Return(d, nil).Once()
		mock.InOrder(
			repo.On("Get", ctx, r.ID()).Return(r, nil).Once(),
			repo.On("ConditionalUpdate", ctx, r.ID(), mock.Anything, mock.Anything).Return(false, nil).Once(),
			repo.On("Get", ctx, r.ID()).Return(restoredRequest(t, r.ID(), request.Accepted, &winner), nil).Once(),
		)
		metrics.On("AssignmentConflict", "accept").Once()

		h := commands.NewAcceptRequestCommandHandler(repo, directory, publisher, metrics)

		// When
		_, err = h.Handle(ctx, cmd)

		// Then
		var conflict *errs.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Reason, "accepted")
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("already accepted request is a conflict without a write", func(t *testing.T) {
		ctx := t.Context()
		other := kernel.NewUUID()
		r := restoredRequest(t, kernel.NewUUID(), request.Accepted, &other)
		d := testDriver(t, true)
		cmd, err := commands.NewAcceptRequestCommand(r.ID(), d.ID())
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		directory := new(MockDriverDirectory)
		metrics := new(MockLifecycleMetrics)
		directory.On("Get", ctx, d.ID()).Return(d, nil).Once()
		repo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		metrics.On("AssignmentConflict", "accept").Once()

		h := commands.NewAcceptRequestCommandHandler(repo, directory, new(MockEventPublisher), metrics)

		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertNotCalled(t, "ConditionalUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		metrics.AssertExpectations(t)
	})

	t.Run("request deleted before the write is not found", func(t *testing.T) {
		ctx := t.Context()
		r := pendingRequest(t)
		d := testDriver(t, true)
		cmd, err := commands.NewAcceptRequestCommand(r.ID(), d.ID())
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		directory := new(MockDriverDirectory)
		directory.On("Get", ctx, d.ID()).Return(d, nil).Once()
		mock.InOrder(
			repo.On("Get", ctx, r.ID()).Return(r, nil).Once(),
			repo.On("ConditionalUpdate", ctx, r.ID(), mock.Anything, mock.Anything).Return(false, nil).Once(),
			repo.On("Get", ctx, r.ID()).Return(nil, errs.NewObjectNotFoundError("request", r.ID())).Once(),
		)

		h := commands.NewAcceptRequestCommandHandler(repo, directory, new(MockEventPublisher), nil)

		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("store timeout leaves the outcome to the caller", func(t *testing.T) {
		ctx := t.Context()
		r := pendingRequest(t)
		d := testDriver(t, true)
		cmd, err := commands.NewAcceptRequestCommand(r.ID(), d.ID())
		require.NoError(t, err)

		repo := new(MockRequestRepository)
		directory := new(MockDriverDirectory)
		directory.On("Get", ctx, d.ID()).Return(d, nil).Once()
		repo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		repo.On("ConditionalUpdate", ctx, r.ID(), mock.Anything, mock.Anything).
			Return(false, context.DeadlineExceeded).Once()

		h := commands.NewAcceptRequestCommandHandler(repo, directory, new(MockEventPublisher), nil)

		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		repo.AssertNumberOfCalls(t, "ConditionalUpdate", 1)
	})

	t.Run("unconstructed command", func(t *testing.T) {
		h := commands.NewAcceptRequestCommandHandler(
			new(MockRequestRepository), new(MockDriverDirectory), new(MockEventPublisher), nil)

		_, err := h.Handle(t.Context(), commands.AcceptRequestCommand{})

		require.ErrorIs(t, err, commands.ErrAcceptRequestCommandIsNotConstructed)
	})
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...request.StatusChanged) {}

func TestAcceptRequestCommandHandler_ConcurrentAccept(t *testing.T) {
	ctx := t.Context()
	store := memory.NewRequestStore()
	r := pendingRequest(t)
	require.NoError(t, store.Add(ctx, r))

	const contenders = 16
	drivers := make([]*driver.Driver, 0, contenders)
	for range contenders {
		drivers = append(drivers, testDriver(t, true))
	}
	directory := memory.NewDriverDirectory(drivers...)
	h := commands.NewAcceptRequestCommandHandler(store, directory, nopPublisher{}, nil)

	var wins, conflicts atomic.Int32
	var g errgroup.Group
	for _, d := range drivers {
		g.Go(func() error {
			cmd, err := commands.NewAcceptRequestCommand(r.ID(), d.ID())
			if err != nil {
				return err
			}
			_, err = h.Handle(ctx, cmd)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, errs.ErrConflict):
				conflicts.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(contenders-1), conflicts.Load())

	stored, err := store.Get(ctx, r.ID())
	require.NoError(t, err)
	assert.Equal(t, request.Accepted, stored.Status())
	require.NotNil(t, stored.DriverID())
}
