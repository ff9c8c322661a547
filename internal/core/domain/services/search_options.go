package services

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

func (o SearchOptions) normalize() (SearchOptions, error) {
	var errList []error

	switch {
	case math.IsNaN(o.RadiusKm) || math.IsInf(o.RadiusKm, 0):
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"radius_km", fmt.Errorf("%v is not a finite number", o.RadiusKm)))
	case o.RadiusKm < 0:
		errList = append(errList, errs.NewValueIsOutOfRangeError("radius_km", o.RadiusKm, 0, math.Inf(1)))
	case o.RadiusKm == 0:
		o.RadiusKm = DefaultSearchRadiusKm
	}

	if o.VehicleClass != kernel.UnknownVehicleClass {
		if err := o.VehicleClass.Validate(); err != nil {
			errList = append(errList, err)
		}
	}
	if o.Limit < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", o.Limit, 0, math.MaxInt))
	}

	return o, errors.Join(errList...)
}
