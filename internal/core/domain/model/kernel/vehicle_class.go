package kernel

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// VehicleClass is the closed set of vehicle kinds a request can ask for and a driver can operate.
// It selects the rate and speed tables of the estimator.
type VehicleClass int

const (
	// UnknownVehicleClass is the zero value and is never valid.
	UnknownVehicleClass VehicleClass = iota
	Motorcycle
	Car
	Truck
)

var vehicleClassNames = map[VehicleClass]string{
	Motorcycle: "motorcycle",
	Car:        "car",
	Truck:      "truck",
}

// VehicleClasses lists every valid class in declaration order.
func VehicleClasses() []VehicleClass {
	return []VehicleClass{Motorcycle, Car, Truck}
}

// ParseVehicleClass maps the wire name ("motorcycle", "car", "truck") to a class.
// Matching is case-insensitive; anything else is rejected rather than defaulted.
func ParseVehicleClass(s string) (VehicleClass, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for class, n := range vehicleClassNames {
		if n == name {
			return class, nil
		}
	}
	return UnknownVehicleClass, errs.NewValueIsInvalidErrorWithCause(
		"vehicle_class", fmt.Errorf("%q is not a known vehicle class", s))
}

func (c VehicleClass) Validate() error {
	if _, ok := vehicleClassNames[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle_class", fmt.Errorf("%d is not a valid vehicle class", c))
	}
	return nil
}

func (c VehicleClass) String() string {
	if n, ok := vehicleClassNames[c]; ok {
		return n
	}
	return "unknown"
}
