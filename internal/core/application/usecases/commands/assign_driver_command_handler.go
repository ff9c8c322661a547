package commands

import (
	"context"

	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
)

// AssignDriverCommandHandler is the operator counterpart of AcceptRequestCommandHandler
// with the same errors and the same single conditional update.
type AssignDriverCommandHandler struct {
	assignment
}

func NewAssignDriverCommandHandler(
	repo ports.RequestRepository,
	directory ports.DriverDirectory,
	publisher ports.EventPublisher,
	metrics ports.LifecycleMetrics,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		assignment: newAssignment(operationAssign, repo, directory, publisher, metrics),
	}
}

func (h AssignDriverCommandHandler) Handle(
	ctx context.Context,
	cmd AssignDriverCommand,
) (*request.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.assign(ctx, cmd.RequestID(), cmd.DriverID())
}
