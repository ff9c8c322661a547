package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	accra   = kernel.MustGeoPoint(5.6037, -0.1870)
	korleBu = kernel.MustGeoPoint(5.5600, -0.2057)
)

type MockDriverDirectory struct{ mock.Mock }

func (m *MockDriverDirectory) ListAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]*driver.Driver)
	return d, args.Error(1)
}

func (m *MockDriverDirectory) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*driver.Driver)
	return d, args.Error(1)
}

func TestEstimateQueryHandler_Handle(t *testing.T) {
	h := queries.NewEstimateQueryHandler(services.NewEstimator())

	t.Run("accra scenario", func(t *testing.T) {
		query, err := queries.NewEstimateQuery(accra, korleBu, 3, kernel.Car)
		require.NoError(t, err)

		got, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.InDelta(t, 5.28, got.DistanceKm, 1e-9)
		assert.InDelta(t, 11.34, got.Price, 1e-9)
		assert.Equal(t, 18, got.EtaMinutes)
	})

	t.Run("negative weight", func(t *testing.T) {
		query, err := queries.NewEstimateQuery(accra, korleBu, -1, kernel.Car)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), query)

		assert.True(t, errs.IsValidation(err))
	})

	t.Run("unconstructed query", func(t *testing.T) {
		_, err := h.Handle(t.Context(), queries.EstimateQuery{})

		require.ErrorIs(t, err, queries.ErrEstimateQueryIsNotConstructed)
	})
}

func TestFindCandidatesQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	near := kernel.MustGeoPoint(5.6137, -0.1870)
	far := kernel.MustGeoPoint(5.9000, -0.1870)

	a, err := driver.NewDriver(kernel.NewUUID(), &near, true, kernel.Motorcycle, 4.9, 300)
	require.NoError(t, err)
	b, err := driver.NewDriver(kernel.NewUUID(), &far, true, kernel.Car, 4.2, 12)
	require.NoError(t, err)

	t.Run("ranks the directory snapshot", func(t *testing.T) {
		h := queries.NewFindCandidatesQueryHandler(memory.NewDriverDirectory(a, b), services.NewDriverLocator())
		query, err := queries.NewFindCandidatesQuery(accra, services.SearchOptions{})
		require.NoError(t, err)

		got, err := h.Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].DriverID.IsEqual(a.ID()))
		assert.Equal(t, kernel.Motorcycle, got[0].VehicleClass)
		assert.Equal(t, 300, got[0].TotalDeliveries)
		assert.InDelta(t, 1.11, got[0].DistanceKm, 0.01)
	})

	t.Run("directory failure", func(t *testing.T) {
		directory := new(MockDriverDirectory)
		directory.On("ListAvailable", ctx).Return(nil, errors.New("directory unavailable")).Once()
		h := queries.NewFindCandidatesQueryHandler(directory, services.NewDriverLocator())
		query, err := queries.NewFindCandidatesQuery(accra, services.SearchOptions{})
		require.NoError(t, err)

		_, err = h.Handle(ctx, query)

		require.EqualError(t, err, "directory unavailable")
		directory.AssertExpectations(t)
	})
}

func TestRequestQueries(t *testing.T) {
	ctx := t.Context()
	store := memory.NewRequestStore()
	created := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	r, err := request.NewDeliveryRequest(kernel.NewUUID(), accra, korleBu, 3, kernel.Car,
		request.Quote{DistanceKm: 5.28, Price: 11.34, EtaMinutes: 18}, created)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, r))

	driverID := kernel.NewUUID()
	accepted, err := request.NewDeliveryRequest(kernel.NewUUID(), accra, korleBu, 1, kernel.Motorcycle,
		request.Quote{DistanceKm: 5.28, Price: 9.22, EtaMinutes: 17}, created.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, accepted))
	applied, err := store.ConditionalUpdate(ctx, accepted.ID(), request.State{Status: request.Pending},
		ports.RequestPatch{Status: request.Accepted, DriverID: &driverID, UpdatedAt: created})
	require.NoError(t, err)
	require.True(t, applied)

	t.Run("get", func(t *testing.T) {
		query, err := queries.NewGetRequestQuery(r.ID())
		require.NoError(t, err)

		view, err := queries.NewGetRequestQueryHandler(store).Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, view.ID.IsEqual(r.ID()))
		assert.Equal(t, request.Pending, view.Status)
		assert.InDelta(t, 11.34, view.Price, 1e-9)
		assert.Nil(t, view.DriverID)
	})

	t.Run("get unknown", func(t *testing.T) {
		query, err := queries.NewGetRequestQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetRequestQueryHandler(store).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("list by driver", func(t *testing.T) {
		query, err := queries.NewListRequestsQuery(nil, &driverID, time.Time{}, 0)
		require.NoError(t, err)

		views, err := queries.NewListRequestsQueryHandler(store).Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.True(t, views[0].ID.IsEqual(accepted.ID()))
		assert.Equal(t, request.Accepted, views[0].Status)
	})

	t.Run("list rejects bad filter", func(t *testing.T) {
		_, err := queries.NewListRequestsQuery([]request.Status{request.Unknown}, nil, time.Time{}, queries.MaxListLimit+1)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "limit")
	})
}
