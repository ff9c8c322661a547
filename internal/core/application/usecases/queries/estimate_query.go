package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrEstimateQueryIsNotConstructed = errors.New(
	"EstimateQuery must be created via NewEstimateQuery constructor",
)

// EstimateQuery prices a route without creating a request.
//
// Example:
//
//	query, err := NewEstimateQuery(pickup, dropoff, 3, kernel.Car)
//	quote, err := handler.Handle(ctx, query)
type EstimateQuery struct { //nolint:recvcheck //using for validation
	pickup       kernel.GeoPoint
	dropoff      kernel.GeoPoint
	weightKg     float64
	vehicleClass kernel.VehicleClass

	guard guard.ConstructorGuard
}

func NewEstimateQuery(
	pickup, dropoff kernel.GeoPoint,
	weightKg float64,
	vehicleClass kernel.VehicleClass,
) (EstimateQuery, error) {
	if err := errors.Join(pickup.Validate(), dropoff.Validate(), vehicleClass.Validate()); err != nil {
		return EstimateQuery{}, err
	}

	return EstimateQuery{
		pickup:       pickup,
		dropoff:      dropoff,
		weightKg:     weightKg,
		vehicleClass: vehicleClass,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q EstimateQuery) Validate() error {
	return q.guard.Validate(ErrEstimateQueryIsNotConstructed)
}

// EstimateQueryResponse is the quote a request for this route would get.
type EstimateQueryResponse struct {
	DistanceKm float64
	Price      float64
	EtaMinutes int
}
