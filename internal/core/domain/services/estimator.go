package services

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"
)

const (
	// BaseFare is charged for every delivery regardless of distance.
	BaseFare = 5.0
	// FreeWeightKg is the package weight included in the base fare.
	FreeWeightKg = 5.0
	// SurchargePerKg is charged for every kilogram above FreeWeightKg.
	SurchargePerKg = 0.5
	// HandlingMinutes is the fixed pickup and drop-off time added to every ETA.
	HandlingMinutes = 10.0
)

// Rate is the per-class pricing and travel speed.
type Rate struct {
	PricePerKm float64
	SpeedKmh   float64
}

var defaultRates = map[kernel.VehicleClass]Rate{
	kernel.Motorcycle: {PricePerKm: 0.8, SpeedKmh: 45},
	kernel.Car:        {PricePerKm: 1.2, SpeedKmh: 40},
	kernel.Truck:      {PricePerKm: 2.0, SpeedKmh: 35},
}

// Estimator derives a price and an ETA from a route length, a package weight and a vehicle class.
//
// Pricing:
//
//	price = round2(BaseFare + distanceKm*PricePerKm + max(0, weightKg-FreeWeightKg)*SurchargePerKg)
//	eta   = round(HandlingMinutes + distanceKm/SpeedKmh*60)
//
// Estimator holds no mutable state and is safe for concurrent use.
//
// Example:
//
//	quote, err := services.NewEstimator().Estimate(5.28, 3, kernel.Car)
//	// quote.Price == 11.34, quote.EtaMinutes == 18
type Estimator struct {
	rates map[kernel.VehicleClass]Rate
}

func NewEstimator() Estimator {
	return Estimator{rates: defaultRates}
}

// RateFor returns the rate of a vehicle class.
func (e Estimator) RateFor(class kernel.VehicleClass) (Rate, error) {
	if err := class.Validate(); err != nil {
		return Rate{}, err
	}
	rate, ok := e.rates[class]
	if !ok {
		return Rate{}, errs.NewValueIsInvalidErrorWithCause(
			"vehicle_class", fmt.Errorf("no rate configured for %s", class))
	}
	return rate, nil
}

// Estimate prices a route of distanceKm. Negative or non-finite distance and weight are rejected.
func (e Estimator) Estimate(distanceKm, weightKg float64, class kernel.VehicleClass) (request.Quote, error) {
	if err := errors.Join(
		validateNonNegative("distance_km", distanceKm),
		validateNonNegative("package_weight_kg", weightKg),
	); err != nil {
		return request.Quote{}, err
	}

	rate, err := e.RateFor(class)
	if err != nil {
		return request.Quote{}, err
	}

	surcharge := math.Max(0, weightKg-FreeWeightKg) * SurchargePerKg
	price := kernel.RoundCents(BaseFare + distanceKm*rate.PricePerKm + surcharge)
	eta := int(math.Round(HandlingMinutes + distanceKm/rate.SpeedKmh*60))

	return request.Quote{
		DistanceKm: distanceKm,
		Price:      price,
		EtaMinutes: eta,
	}, nil
}

// EstimateRoute measures the great-circle distance from pickup to dropoff and prices it.
func (e Estimator) EstimateRoute(
	pickup, dropoff kernel.GeoPoint,
	weightKg float64,
	class kernel.VehicleClass,
) (request.Quote, error) {
	distance, err := kernel.Distance(pickup, dropoff)
	if err != nil {
		return request.Quote{}, err
	}
	return e.Estimate(distance, weightKg, class)
}

func validateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not a finite number", v))
	}
	if v < 0 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, math.Inf(1))
	}
	return nil
}
