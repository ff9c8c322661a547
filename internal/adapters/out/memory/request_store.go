// Package memory provides process-local implementations of the request store and the driver
// directory. They back the STORE=memory mode and fast tests; a single process is the only
// writer, so a mutex is enough to make ConditionalUpdate atomic.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// record is the stored form of a request; aggregates are rebuilt on every read so callers
// never share mutable state with the store.
type record struct {
	id           kernel.UUID
	pickup       kernel.GeoPoint
	dropoff      kernel.GeoPoint
	weightKg     float64
	vehicleClass kernel.VehicleClass
	quote        request.Quote
	status       request.Status
	driverID     *kernel.UUID
	createdAt    time.Time
	updatedAt    time.Time
}

// RequestStore is an in-memory ports.RequestRepository.
type RequestStore struct {
	mu       sync.RWMutex
	requests map[kernel.UUID]record
}

var _ ports.RequestRepository = (*RequestStore)(nil)

func NewRequestStore() *RequestStore {
	return &RequestStore{
		requests: make(map[kernel.UUID]record),
	}
}

func (s *RequestStore) Add(ctx context.Context, r *request.DeliveryRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[r.ID()]; ok {
		return errs.NewConflictError("request", r.ID(), "already exists")
	}
	s.requests[r.ID()] = record{
		id:           r.ID(),
		pickup:       r.Pickup(),
		dropoff:      r.Dropoff(),
		weightKg:     r.WeightKg(),
		vehicleClass: r.VehicleClass(),
		quote:        r.Quote(),
		status:       r.Status(),
		driverID:     r.DriverID(),
		createdAt:    r.CreatedAt(),
		updatedAt:    r.UpdatedAt(),
	}
	return nil
}

func (s *RequestStore) Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	rec, ok := s.requests[id]
	s.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("request", id)
	}
	return rec.toDomain()
}

func (s *RequestStore) List(ctx context.Context, filter ports.RequestFilter) ([]*request.DeliveryRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]record, 0)
	for _, rec := range s.requests {
		if rec.matches(filter) {
			matched = append(matched, rec)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b record) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return a.id.Compare(b.id)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = ports.DefaultListLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]*request.DeliveryRequest, 0, len(matched))
	for _, rec := range matched {
		r, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// ConditionalUpdate compares and sets under the write lock.
func (s *RequestStore) ConditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	expected request.State,
	patch ports.RequestPatch,
) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.requests[id]
	if !ok || rec.status != expected.Status || !sameDriver(rec.driverID, expected.DriverID) {
		return false, nil
	}

	rec.status = patch.Status
	rec.driverID = copyID(patch.DriverID)
	rec.updatedAt = patch.UpdatedAt.UTC()
	s.requests[id] = rec
	return true, nil
}

func (rec record) matches(filter ports.RequestFilter) bool {
	if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, rec.status) {
		return false
	}
	if filter.DriverID != nil && !sameDriver(rec.driverID, filter.DriverID) {
		return false
	}
	if !filter.CreatedBefore.IsZero() && !rec.createdAt.Before(filter.CreatedBefore) {
		return false
	}
	return true
}

func (rec record) toDomain() (*request.DeliveryRequest, error) {
	return request.RestoreDeliveryRequest(
		rec.id, rec.pickup, rec.dropoff, rec.weightKg, rec.vehicleClass, rec.quote,
		rec.status, rec.driverID, rec.createdAt, rec.updatedAt,
	)
}

func sameDriver(a, b *kernel.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(*b)
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
