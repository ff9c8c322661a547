package request_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPickup  = kernel.MustGeoPoint(5.6037, -0.1870)
	testDropoff = kernel.MustGeoPoint(5.5600, -0.2057)
	testQuote   = request.Quote{DistanceKm: 5.28, Price: 11.34, EtaMinutes: 18}
	testNow     = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
)

func newPending(t *testing.T) *request.DeliveryRequest {
	t.Helper()
	r, err := request.NewDeliveryRequest(kernel.NewUUID(), testPickup, testDropoff, 3, kernel.Car, testQuote, testNow)
	require.NoError(t, err)
	r.PullEvents()
	return r
}

func TestNewDeliveryRequest(t *testing.T) {
	t.Run("should create pending request without driver", func(t *testing.T) {
		id := kernel.NewUUID()

		r, err := request.NewDeliveryRequest(id, testPickup, testDropoff, 3, kernel.Car, testQuote, testNow)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(id))
		assert.Equal(t, request.Pending, r.Status())
		assert.Nil(t, r.DriverID())
		assert.InDelta(t, 11.34, r.Price(), 1e-9)
		assert.Equal(t, 18, r.EtaMinutes())
		assert.Equal(t, kernel.Car, r.VehicleClass())
		assert.Equal(t, testNow, r.CreatedAt())
		assert.Equal(t, testNow, r.UpdatedAt())

		events := r.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, request.Unknown, events[0].From)
		assert.Equal(t, request.Pending, events[0].To)
		assert.Empty(t, r.PullEvents())
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		tests := []struct {
			name    string
			id      kernel.UUID
			pickup  kernel.GeoPoint
			weight  float64
			class   kernel.VehicleClass
			quote   request.Quote
			message string
		}{
			{"nil id", kernel.UUID{}, testPickup, 3, kernel.Car, testQuote, "id"},
			{"zero pickup", kernel.NewUUID(), kernel.GeoPoint{}, 3, kernel.Car, testQuote, "geo point"},
			{"negative weight", kernel.NewUUID(), testPickup, -1, kernel.Car, testQuote, "package_weight_kg"},
			{"unknown class", kernel.NewUUID(), testPickup, 3, kernel.UnknownVehicleClass, testQuote, "vehicle_class"},
			{"negative price", kernel.NewUUID(), testPickup, 3, kernel.Car, request.Quote{Price: -1}, "price"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r, err := request.NewDeliveryRequest(tt.id, tt.pickup, testDropoff, tt.weight, tt.class, tt.quote, testNow)

				require.Error(t, err)
				assert.Nil(t, r)
				assert.True(t, errs.IsValidation(err))
				assert.Contains(t, err.Error(), tt.message)
			})
		}
	})
}

func TestDeliveryRequest_Accept(t *testing.T) {
	t.Run("should assign driver and move to accepted", func(t *testing.T) {
		r := newPending(t)
		driverID := kernel.NewUUID()
		later := testNow.Add(time.Minute)

		require.NoError(t, r.Accept(driverID, later))

		assert.Equal(t, request.Accepted, r.Status())
		require.NotNil(t, r.DriverID())
		assert.True(t, r.DriverID().IsEqual(driverID))
		assert.Equal(t, later, r.UpdatedAt())
		assert.InDelta(t, 11.34, r.Price(), 1e-9, "quote must not be recomputed")

		events := r.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, request.Pending, events[0].From)
		assert.Equal(t, request.Accepted, events[0].To)
		assert.True(t, events[0].DriverID.IsEqual(driverID))
	})

	t.Run("second accept is a conflict", func(t *testing.T) {
		r := newPending(t)
		first := kernel.NewUUID()
		require.NoError(t, r.Accept(first, testNow))

		err := r.Accept(kernel.NewUUID(), testNow)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, r.DriverID().IsEqual(first))
	})

	t.Run("cancelled request cannot be accepted", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Transition(request.Cancelled, testNow))

		err := r.Accept(kernel.NewUUID(), testNow)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, request.Cancelled, r.Status())
	})

	t.Run("nil driver id is a validation error", func(t *testing.T) {
		r := newPending(t)

		err := r.Accept(kernel.UUID{}, testNow)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Equal(t, request.Pending, r.Status())
	})
}

func TestDeliveryRequest_Transition(t *testing.T) {
	t.Run("happy path to delivered keeps driver", func(t *testing.T) {
		r := newPending(t)
		driverID := kernel.NewUUID()
		require.NoError(t, r.Accept(driverID, testNow))

		for _, next := range []request.Status{request.PickedUp, request.InTransit, request.Delivered} {
			require.NoError(t, r.Transition(next, testNow))
			assert.Equal(t, next, r.Status())
			assert.True(t, r.DriverID().IsEqual(driverID))
		}

		assert.True(t, r.Status().IsTerminal())
		assert.Len(t, r.PullEvents(), 4)
	})

	t.Run("pending to delivered is rejected", func(t *testing.T) {
		r := newPending(t)

		err := r.Transition(request.Delivered, testNow)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, request.Pending, r.Status())
		assert.Empty(t, r.PullEvents())
	})

	t.Run("accepted cannot be reached without a driver", func(t *testing.T) {
		r := newPending(t)

		err := r.Transition(request.Accepted, testNow)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Nil(t, r.DriverID())
	})

	t.Run("accepted is not an edge from later statuses", func(t *testing.T) {
		tests := []struct {
			name string
			path []request.Status
		}{
			{"accepted", nil},
			{"picked_up", []request.Status{request.PickedUp}},
			{"in_transit", []request.Status{request.PickedUp, request.InTransit}},
			{"delivered", []request.Status{request.PickedUp, request.InTransit, request.Delivered}},
			{"cancelled", []request.Status{request.Cancelled}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r := newPending(t)
				require.NoError(t, r.Accept(kernel.NewUUID(), testNow))
				for _, next := range tt.path {
					require.NoError(t, r.Transition(next, testNow))
				}
				before := r.State()

				err := r.Transition(request.Accepted, testNow)

				var invalid *errs.InvalidTransitionError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.name, invalid.From)
				assert.False(t, errs.IsValidation(err))
				assert.Equal(t, before, r.State())
			})
		}
	})

	t.Run("cancel from accepted releases driver", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Accept(kernel.NewUUID(), testNow))

		require.NoError(t, r.Transition(request.Cancelled, testNow))

		assert.Equal(t, request.Cancelled, r.Status())
		assert.Nil(t, r.DriverID())
	})

	t.Run("cancel after pickup is rejected", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Accept(kernel.NewUUID(), testNow))
		require.NoError(t, r.Transition(request.PickedUp, testNow))

		err := r.Transition(request.Cancelled, testNow)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, request.PickedUp, r.Status())
	})

	t.Run("terminal states accept no transition", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Transition(request.Cancelled, testNow))

		for _, target := range []request.Status{request.Pending, request.PickedUp, request.Cancelled} {
			require.ErrorIs(t, r.Transition(target, testNow), errs.ErrInvalidTransition)
		}
	})
}

func TestRestoreDeliveryRequest(t *testing.T) {
	driverID := kernel.NewUUID()

	tests := []struct {
		name     string
		status   request.Status
		driverID *kernel.UUID
		wantErr  bool
	}{
		{"pending without driver", request.Pending, nil, false},
		{"in transit with driver", request.InTransit, &driverID, false},
		{"cancelled without driver", request.Cancelled, nil, false},
		{"pending with driver", request.Pending, &driverID, true},
		{"accepted without driver", request.Accepted, nil, true},
		{"unknown status", request.Unknown, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := request.RestoreDeliveryRequest(
				kernel.NewUUID(), testPickup, testDropoff, 3, kernel.Car, testQuote,
				tt.status, tt.driverID, testNow, testNow.Add(time.Hour),
			)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, r.Status())
			assert.Equal(t, testNow.Add(time.Hour), r.UpdatedAt())
			assert.Empty(t, r.PullEvents(), "restoring must not raise events")
		})
	}
}

func TestDeliveryRequest_State(t *testing.T) {
	r := newPending(t)
	before := r.State()

	driverID := kernel.NewUUID()
	require.NoError(t, r.Accept(driverID, testNow))

	assert.Equal(t, request.Pending, before.Status)
	assert.Nil(t, before.DriverID)
	assert.Equal(t, request.Accepted, r.State().Status)
	assert.True(t, r.State().DriverID.IsEqual(driverID))
}

func TestDeliveryRequest_Validate(t *testing.T) {
	var nilRequest *request.DeliveryRequest
	require.ErrorIs(t, nilRequest.Validate(), request.ErrRequestIsNotConstructed)

	var zero request.DeliveryRequest
	require.ErrorIs(t, zero.Validate(), request.ErrRequestIsNotConstructed)
}
