package driver

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinRating and MaxRating bound a driver's average customer rating.
	MinRating = 0.0
	MaxRating = 5.0
)

// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is a read-only snapshot of a driver as published by the driver directory.
// The engine never mutates a Driver; availability and location change in the directory
// and reach the engine with the next snapshot.
//
// A driver without a known location is valid but never eligible as a candidate.
//
// Example:
//
//	here := kernel.MustGeoPoint(5.6037, -0.1870)
//	d, err := driver.NewDriver(kernel.NewUUID(), &here, true, kernel.Motorcycle, 4.8, 120)
type Driver struct {
	id              kernel.UUID
	location        *kernel.GeoPoint
	available       bool
	vehicleClass    kernel.VehicleClass
	rating          float64
	totalDeliveries int
	guard           guard.ConstructorGuard
}

// NewDriver validates every field and returns the snapshot. location may be nil.
func NewDriver(
	id kernel.UUID,
	location *kernel.GeoPoint,
	available bool,
	vehicleClass kernel.VehicleClass,
	rating float64,
	totalDeliveries int,
) (*Driver, error) {
	d := &Driver{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setLocation(location),
		d.setVehicleClass(vehicleClass),
		d.setRating(rating),
		d.setTotalDeliveries(totalDeliveries),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID                   { return d.id }
func (d *Driver) IsAvailable() bool                 { return d.available }
func (d *Driver) VehicleClass() kernel.VehicleClass { return d.vehicleClass }
func (d *Driver) Rating() float64                   { return d.rating }
func (d *Driver) TotalDeliveries() int              { return d.totalDeliveries }

// Location returns the last reported position and whether one is known.
func (d *Driver) Location() (kernel.GeoPoint, bool) {
	if d.location == nil {
		return kernel.GeoPoint{}, false
	}
	return *d.location, true
}

// CanTakeJobs reports whether the driver may be offered or assigned a request right now:
// available and with a known location.
func (d *Driver) CanTakeJobs() bool {
	return d.available && d.location != nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	l := *location
	d.location = &l
	return nil
}

func (d *Driver) setVehicleClass(vehicleClass kernel.VehicleClass) error {
	if err := vehicleClass.Validate(); err != nil {
		return err
	}
	d.vehicleClass = vehicleClass
	return nil
}

func (d *Driver) setRating(rating float64) error {
	if math.IsNaN(rating) {
		return errs.NewValueIsInvalidErrorWithCause("rating", fmt.Errorf("%v is not a number", rating))
	}
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	d.rating = rating
	return nil
}

func (d *Driver) setTotalDeliveries(total int) error {
	if total < 0 {
		return errs.NewValueIsOutOfRangeError("total_deliveries", total, 0, math.MaxInt)
	}
	d.totalDeliveries = total
	return nil
}
