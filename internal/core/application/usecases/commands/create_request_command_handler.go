package commands

import (
	"context"

	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateRequestCommandHandler prices a route and stores it as a pending request.
type CreateRequestCommandHandler struct {
	lifecycle
	estimator services.Estimator
}

func NewCreateRequestCommandHandler(
	repo ports.RequestRepository,
	estimator services.Estimator,
	publisher ports.EventPublisher,
	metrics ports.LifecycleMetrics,
) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		lifecycle: newLifecycle(repo, publisher, metrics),
		estimator: estimator,
	}
}

// Handle returns the stored request. The quote is computed here once and never again.
func (h CreateRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRequestCommand,
) (*request.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	quote, err := h.estimator.EstimateRoute(cmd.Pickup(), cmd.Dropoff(), cmd.WeightKg(), cmd.VehicleClass())
	if err != nil {
		return nil, err
	}

	r, err := request.NewDeliveryRequest(
		cmd.RequestID(), cmd.Pickup(), cmd.Dropoff(), cmd.WeightKg(), cmd.VehicleClass(), quote, h.now(),
	)
	if err != nil {
		return nil, err
	}

	if err = h.repo.Add(ctx, r); err != nil {
		return nil, err
	}

	h.metrics.RequestCreated(r.VehicleClass())
	h.publisher.Publish(ctx, r.PullEvents()...)

	return r, nil
}
