package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
)

// TransitionRequestCommandHandler applies a graph-validated status change.
//
// Edges outside the lifecycle graph fail with errs.InvalidTransitionError before anything
// is written. The write is guarded on the status and driver observed at load time, so a
// concurrent change in between yields errs.ConflictError instead of being overwritten.
type TransitionRequestCommandHandler struct {
	lifecycle
}

func NewTransitionRequestCommandHandler(
	repo ports.RequestRepository,
	publisher ports.EventPublisher,
	metrics ports.LifecycleMetrics,
) TransitionRequestCommandHandler {
	return TransitionRequestCommandHandler{
		lifecycle: newLifecycle(repo, publisher, metrics),
	}
}

func (h TransitionRequestCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionRequestCommand,
) (*request.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.apply(ctx, cmd.RequestID(), func(r *request.DeliveryRequest, now time.Time) error {
		return r.Transition(cmd.Target(), now)
	})
}
