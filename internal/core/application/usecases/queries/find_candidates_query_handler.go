package queries

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// FindCandidatesQueryHandler reads one directory snapshot and ranks it with the locator.
// How fresh the snapshot is depends on the directory implementation behind the port.
type FindCandidatesQueryHandler struct {
	directory ports.DriverDirectory
	locator   services.DriverLocator
}

func NewFindCandidatesQueryHandler(
	directory ports.DriverDirectory,
	locator services.DriverLocator,
) FindCandidatesQueryHandler {
	return FindCandidatesQueryHandler{directory: directory, locator: locator}
}

func (h FindCandidatesQueryHandler) Handle(
	ctx context.Context,
	query FindCandidatesQuery,
) ([]CandidateResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.directory.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := h.locator.FindCandidates(query.pickup, snapshot, query.opts)
	if err != nil {
		return nil, err
	}

	response := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		response = append(response, CandidateResponse{
			DriverID:        c.Driver.ID(),
			DistanceKm:      c.DistanceKm,
			VehicleClass:    c.Driver.VehicleClass(),
			Rating:          c.Driver.Rating(),
			TotalDeliveries: c.Driver.TotalDeliveries(),
		})
	}
	return response, nil
}
