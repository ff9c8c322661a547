package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrFindCandidatesQueryIsNotConstructed = errors.New(
	"FindCandidatesQuery must be created via NewFindCandidatesQuery constructor",
)

// FindCandidatesQuery ranks available drivers around a pickup point.
// Radius, class filter and limit are optional; see services.SearchOptions.
type FindCandidatesQuery struct { //nolint:recvcheck //using for validation
	pickup kernel.GeoPoint
	opts   services.SearchOptions

	guard guard.ConstructorGuard
}

func NewFindCandidatesQuery(pickup kernel.GeoPoint, opts services.SearchOptions) (FindCandidatesQuery, error) {
	if err := pickup.Validate(); err != nil {
		return FindCandidatesQuery{}, err
	}

	return FindCandidatesQuery{
		pickup: pickup,
		opts:   opts,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q FindCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrFindCandidatesQueryIsNotConstructed)
}

// CandidateResponse is one ranked driver.
type CandidateResponse struct {
	DriverID        kernel.UUID
	DistanceKm      float64
	VehicleClass    kernel.VehicleClass
	Rating          float64
	TotalDeliveries int
}
