package services

import (
	"cmp"
	"slices"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DefaultSearchRadiusKm is used when a search does not name a radius.
const DefaultSearchRadiusKm = 10.0

// SearchOptions narrows a candidate search.
type SearchOptions struct {
	// RadiusKm is inclusive. Zero means DefaultSearchRadiusKm.
	RadiusKm float64
	// VehicleClass keeps only drivers of this class. UnknownVehicleClass keeps all.
	VehicleClass kernel.VehicleClass
	// Limit caps the number of candidates. Zero means no cap.
	Limit int
}

// Candidate is an eligible driver together with its distance to the pickup point.
type Candidate struct {
	Driver     *driver.Driver
	DistanceKm float64
}

// DriverLocator ranks a directory snapshot by proximity to a pickup point.
// It is a pure function of its inputs: the snapshot is neither mutated nor retained.
type DriverLocator struct{}

func NewDriverLocator() DriverLocator {
	return DriverLocator{}
}

// FindCandidates returns the available, located drivers within the search radius of pickup,
// nearest first. Drivers at the same distance are ordered by id so the result is deterministic.
func (DriverLocator) FindCandidates(
	pickup kernel.GeoPoint,
	drivers []*driver.Driver,
	opts SearchOptions,
) ([]Candidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.CanTakeJobs() {
			continue
		}
		if opts.VehicleClass != kernel.UnknownVehicleClass && d.VehicleClass() != opts.VehicleClass {
			continue
		}

		location, _ := d.Location()
		distance, err := kernel.Distance(pickup, location)
		if err != nil {
			return nil, err
		}
		if distance > opts.RadiusKm {
			continue
		}
		candidates = append(candidates, Candidate{Driver: d, DistanceKm: distance})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return a.Driver.ID().Compare(b.Driver.ID())
	})

	if opts.Limit > 0 && len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}
	return candidates, nil
}
