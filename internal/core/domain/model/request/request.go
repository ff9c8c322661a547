package request

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrRequestIsNotConstructed is returned when a DeliveryRequest was not created through
// NewDeliveryRequest or RestoreDeliveryRequest.
var ErrRequestIsNotConstructed = errors.New("DeliveryRequest must be created via NewDeliveryRequest constructor")

// DeliveryRequest is the aggregate root of the lifecycle engine. It carries the route,
// the package, the quote fixed at creation and the current status/driver pair.
//
// Invariants:
//   - driverID is set if and only if status.RequiresDriver()
//   - the quote is set once by the constructor and never changes
//   - status only moves along the edges of the lifecycle graph
//   - once Delivered or Cancelled the request is immutable
//
// A DeliveryRequest is a plain in-memory value: mutating it does not persist anything.
// Command handlers apply a change here first, then persist it with a conditional update
// guarded on the State observed before the change (see State and ports.RequestRepository).
type DeliveryRequest struct {
	id           kernel.UUID
	pickup       kernel.GeoPoint
	dropoff      kernel.GeoPoint
	weightKg     float64
	vehicleClass kernel.VehicleClass
	quote        Quote
	status       Status
	driverID     *kernel.UUID
	createdAt    time.Time
	updatedAt    time.Time

	events []StatusChanged
	guard  guard.ConstructorGuard
}

// State is the status/driver pair a conditional update is guarded on.
// DriverID nil means "no driver assigned".
type State struct {
	Status   Status
	DriverID *kernel.UUID
}

// NewDeliveryRequest creates a pending request with no driver.
//
// Example:
//
//	quote, _ := estimator.EstimateRoute(pickup, dropoff, 3, kernel.Car)
//	req, err := request.NewDeliveryRequest(kernel.NewUUID(), pickup, dropoff, 3, kernel.Car, quote, time.Now())
func NewDeliveryRequest(
	id kernel.UUID,
	pickup, dropoff kernel.GeoPoint,
	weightKg float64,
	vehicleClass kernel.VehicleClass,
	quote Quote,
	now time.Time,
) (*DeliveryRequest, error) {
	r := &DeliveryRequest{
		status:    Pending,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setRoute(pickup, dropoff),
		r.setWeight(weightKg),
		r.setVehicleClass(vehicleClass),
		r.setQuote(quote),
	); err != nil {
		return nil, err
	}

	r.record(Unknown, now)
	return r, nil
}

// RestoreDeliveryRequest rebuilds a request from storage, re-checking every invariant.
func RestoreDeliveryRequest(
	id kernel.UUID,
	pickup, dropoff kernel.GeoPoint,
	weightKg float64,
	vehicleClass kernel.VehicleClass,
	quote Quote,
	status Status,
	driverID *kernel.UUID,
	createdAt, updatedAt time.Time,
) (*DeliveryRequest, error) {
	r := &DeliveryRequest{
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setRoute(pickup, dropoff),
		r.setWeight(weightKg),
		r.setVehicleClass(vehicleClass),
		r.setQuote(quote),
		r.setStatus(status, driverID),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *DeliveryRequest) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r *DeliveryRequest) ID() kernel.UUID                   { return r.id }
func (r *DeliveryRequest) Pickup() kernel.GeoPoint           { return r.pickup }
func (r *DeliveryRequest) Dropoff() kernel.GeoPoint          { return r.dropoff }
func (r *DeliveryRequest) WeightKg() float64                 { return r.weightKg }
func (r *DeliveryRequest) VehicleClass() kernel.VehicleClass { return r.vehicleClass }
func (r *DeliveryRequest) Quote() Quote                      { return r.quote }
func (r *DeliveryRequest) Price() float64                    { return r.quote.Price }
func (r *DeliveryRequest) EtaMinutes() int                   { return r.quote.EtaMinutes }
func (r *DeliveryRequest) Status() Status                    { return r.status }
func (r *DeliveryRequest) CreatedAt() time.Time              { return r.createdAt }
func (r *DeliveryRequest) UpdatedAt() time.Time              { return r.updatedAt }

// DriverID returns the assigned driver, or nil.
func (r *DeliveryRequest) DriverID() *kernel.UUID {
	if r.driverID == nil {
		return nil
	}
	id := *r.driverID
	return &id
}

// State returns the current status/driver pair.
func (r *DeliveryRequest) State() State {
	return State{Status: r.status, DriverID: r.DriverID()}
}

// Accept assigns driverID and moves the request to Accepted.
//
// Only a Pending request without a driver can be accepted; anything else means another
// acceptance already won and is reported as a ConflictError ("job already taken").
// Driver availability is checked by the caller against the directory at the same moment.
func (r *DeliveryRequest) Accept(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if r.driverID != nil {
		return errs.NewConflictError("request", r.id, "already assigned")
	}
	if r.status != Pending {
		return errs.NewConflictError("request", r.id, fmt.Sprintf("is %s, not pending", r.status))
	}

	from := r.status
	r.status = Accepted
	r.driverID = &driverID
	r.record(from, now)
	return nil
}

// Transition moves the request along one edge of the lifecycle graph.
//
// Edges outside the graph fail with errs.InvalidTransitionError. The pending -> accepted
// edge needs a driver and is only reachable through Accept.
// Cancelling an accepted request releases its driver.
func (r *DeliveryRequest) Transition(target Status, now time.Time) error {
	if err := r.status.ValidateTransition(target); err != nil {
		return err
	}
	if target == Accepted {
		return errs.NewValueIsRequiredErrorWithCause(
			"driver_id", errors.New("accepting a request requires a driver"))
	}

	from := r.status
	r.status = target
	if !target.RequiresDriver() {
		r.driverID = nil
	}
	r.record(from, now)
	return nil
}

// PullEvents returns and clears the events raised since the last call.
func (r *DeliveryRequest) PullEvents() []StatusChanged {
	events := r.events
	r.events = nil
	return events
}

func (r *DeliveryRequest) record(from Status, now time.Time) {
	r.updatedAt = now.UTC()
	r.events = append(r.events, StatusChanged{
		RequestID:  r.id,
		From:       from,
		To:         r.status,
		DriverID:   r.DriverID(),
		OccurredAt: r.updatedAt,
	})
}

func (r *DeliveryRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryRequest) setRoute(pickup, dropoff kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), dropoff.Validate()); err != nil {
		return err
	}
	r.pickup = pickup
	r.dropoff = dropoff
	return nil
}

func (r *DeliveryRequest) setWeight(weightKg float64) error {
	if weightKg < 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return errs.NewValueIsInvalidErrorWithCause(
			"package_weight_kg", fmt.Errorf("%v is not a non-negative number", weightKg))
	}
	r.weightKg = weightKg
	return nil
}

func (r *DeliveryRequest) setVehicleClass(vehicleClass kernel.VehicleClass) error {
	if err := vehicleClass.Validate(); err != nil {
		return err
	}
	r.vehicleClass = vehicleClass
	return nil
}

func (r *DeliveryRequest) setQuote(quote Quote) error {
	if err := quote.Validate(); err != nil {
		return err
	}
	r.quote = quote
	return nil
}

func (r *DeliveryRequest) setStatus(status Status, driverID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateDriverPresence(driverID != nil); err != nil {
		return err
	}

	r.status = status
	if driverID != nil {
		id := *driverID
		r.driverID = &id
	}
	return nil
}
