package request

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Quote is the price and time estimate computed once when a request is created.
// It is never recomputed afterwards, in particular not after a driver is assigned.
type Quote struct {
	DistanceKm float64
	Price      float64
	EtaMinutes int
}

// Validate rejects negative components.
func (q Quote) Validate() error {
	var errList []error
	if q.DistanceKm < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"distance_km", fmt.Errorf("%v is negative", q.DistanceKm)))
	}
	if q.Price < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%v is negative", q.Price)))
	}
	if q.EtaMinutes < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"eta_minutes", fmt.Errorf("%d is negative", q.EtaMinutes)))
	}
	return errors.Join(errList...)
}
