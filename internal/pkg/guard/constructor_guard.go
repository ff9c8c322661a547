// Package guard detects value objects and aggregates that were not created through
// their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is the error returned by ConstructorGuard.Validate when the
// guard is a zero value and the caller passed a nil error. Validation of an unconstructed
// object therefore always fails with a readable message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value object or aggregate as created through its constructor.
// Only NewConstructorGuard produces a guard that validates, so a struct literal or the zero
// value of the embedding type is detected the first time it is validated.
//
// GeoPoint, Driver, DeliveryRequest and the command and query objects embed one. Their
// zero values are invalid, and their Validate methods start by checking the guard.
//
// Example usage:
//
//	var ErrGeoPointIsNotConstructed = errors.New("GeoPoint must be created via NewGeoPoint")
//
//	type GeoPoint struct {
//	    lat, lon float64
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
//	    if lat < -90 || lat > 90 {
//	        return GeoPoint{}, errors.New("latitude out of range")
//	    }
//	    return GeoPoint{lat: lat, lon: lon, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p GeoPoint) Validate() error {
//	    return p.guard.Validate(ErrGeoPointIsNotConstructed)
//	}
//
// The guard is immutable and safe to copy and to share between goroutines.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marking its owner as properly constructed.
// Call it from the constructor of the embedding type, and from its restore function when
// the value is rebuilt from storage.
//
// Example:
//
//	func NewDriver(id kernel.UUID, available bool) (*Driver, error) {
//	    return &Driver{
//	        id:        id,
//	        available: available,
//	        guard:     guard.NewConstructorGuard(),
//	    }, nil
//	}
//
// Returns:
//   - A ConstructorGuard for which Validate always returns nil
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate checks whether the owner of the guard was created through its constructor.
//
// It is meant to be the first check of the owner's own Validate method, before any other
// invariant is looked at.
//
// Parameters:
//   - err: the error to return when the owner is a zero value
//
// Example:
//
//	func (r *DeliveryRequest) Validate() error {
//	    if r == nil {
//	        return ErrRequestIsNotConstructed
//	    }
//	    return r.guard.Validate(ErrRequestIsNotConstructed)
//	}
//
// Returns:
//   - nil if the guard was created by NewConstructorGuard
//   - err if the guard is a zero value
//   - ErrDefaultConstructorGuard if the guard is a zero value and err is nil
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
