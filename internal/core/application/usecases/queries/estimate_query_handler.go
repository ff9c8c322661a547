package queries

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// EstimateQueryHandler is a thin wrapper over services.Estimator; it never touches storage.
type EstimateQueryHandler struct {
	estimator services.Estimator
}

func NewEstimateQueryHandler(estimator services.Estimator) EstimateQueryHandler {
	return EstimateQueryHandler{estimator: estimator}
}

func (h EstimateQueryHandler) Handle(_ context.Context, query EstimateQuery) (EstimateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EstimateQueryResponse{}, err
	}

	quote, err := h.estimator.EstimateRoute(query.pickup, query.dropoff, query.weightKg, query.vehicleClass)
	if err != nil {
		return EstimateQueryResponse{}, err
	}

	return EstimateQueryResponse{
		DistanceKm: quote.DistanceKm,
		Price:      quote.Price,
		EtaMinutes: quote.EtaMinutes,
	}, nil
}
