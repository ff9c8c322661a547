package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand registers a new delivery request. The price and ETA are not part of
// the command: the handler derives them from the route.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand(kernel.NewUUID(), pickup, dropoff, 3, kernel.Car)
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//	req, err := handler.Handle(ctx, cmd)
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID    kernel.UUID
	pickup       kernel.GeoPoint
	dropoff      kernel.GeoPoint
	weightKg     float64
	vehicleClass kernel.VehicleClass

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand validates identifiers, points and class. The weight is validated
// by the estimator together with the distance.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	pickup, dropoff kernel.GeoPoint,
	weightKg float64,
	vehicleClass kernel.VehicleClass,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		weightKg: weightKg,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setRoute(pickup, dropoff),
		cmd.setVehicleClass(vehicleClass),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID            { return c.requestID }
func (c CreateRequestCommand) Pickup() kernel.GeoPoint           { return c.pickup }
func (c CreateRequestCommand) Dropoff() kernel.GeoPoint          { return c.dropoff }
func (c CreateRequestCommand) WeightKg() float64                 { return c.weightKg }
func (c CreateRequestCommand) VehicleClass() kernel.VehicleClass { return c.vehicleClass }

func (c *CreateRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}

func (c *CreateRequestCommand) setRoute(pickup, dropoff kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), dropoff.Validate()); err != nil {
		return err
	}
	c.pickup = pickup
	c.dropoff = dropoff
	return nil
}

func (c *CreateRequestCommand) setVehicleClass(class kernel.VehicleClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	c.vehicleClass = class
	return nil
}
