package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.DeliveryRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*request.DeliveryRequest)
	return r, args.Error(1)
}

func (m *MockRequestRepository) List(ctx context.Context, filter ports.RequestFilter) ([]*request.DeliveryRequest, error) {
	args := m.Called(ctx, filter)
	r, _ := args.Get(0).([]*request.DeliveryRequest)
	return r, args.Error(1)
}

func (m *MockRequestRepository) ConditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	expected request.State,
	patch ports.RequestPatch,
) (bool, error) {
	args := m.Called(ctx, id, expected, patch)
	return args.Bool(0), args.Error(1)
}

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

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...request.StatusChanged) {
	m.Called(ctx, events)
}

type MockLifecycleMetrics struct{ mock.Mock }

func (m *MockLifecycleMetrics) RequestCreated(class kernel.VehicleClass) { m.Called(class) }
func (m *MockLifecycleMetrics) StatusChanged(from, to request.Status)    { m.Called(from, to) }
func (m *MockLifecycleMetrics) AssignmentConflict(operation string)      { m.Called(operation) }

var (
	accra   = kernel.MustGeoPoint(5.6037, -0.1870)
	korleBu = kernel.MustGeoPoint(5.5600, -0.2057)
	created = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
)

func pendingRequest(t *testing.T) *request.DeliveryRequest {
	t.Helper()
	r, err := request.RestoreDeliveryRequest(
		kernel.NewUUID(), accra, korleBu, 3, kernel.Car,
		request.Quote{DistanceKm: 5.28, Price: 11.34, EtaMinutes: 18},
		request.Pending, nil, created, created,
	)
	require.NoError(t, err)
	return r
}

func restoredRequest(t *testing.T, id kernel.UUID, status request.Status, driverID *kernel.UUID) *request.DeliveryRequest {
	t.Helper()
	r, err := request.RestoreDeliveryRequest(
		id, accra, korleBu, 3, kernel.Car,
		request.Quote{DistanceKm: 5.28, Price: 11.34, EtaMinutes: 18},
		status, driverID, created, created,
	)
	require.NoError(t, err)
	return r
}

func testDriver(t *testing.T, available bool) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), &accra, available, kernel.Car, 4.7, 31)
	require.NoError(t, err)
	return d
}
