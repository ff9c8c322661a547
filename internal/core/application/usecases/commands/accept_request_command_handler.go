package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const (
	operationAccept = "accept"
	operationAssign = "assign"
)

// AcceptRequestCommandHandler lets a driver take a pending request.
//
// The driver must exist (errs.ObjectNotFoundError) and be available at this moment
// (errs.ConflictError). The request is then switched to accepted with one conditional
// update that only matches while it is still pending and unassigned. A driver that loses
// the race gets errs.ConflictError and must treat the job as taken.
//
// Example:
//
//	cmd, _ := NewAcceptRequestCommand(requestID, driverID)
//	req, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // job no longer available
//	}
type AcceptRequestCommandHandler struct {
	assignment
}

func NewAcceptRequestCommandHandler(
	repo ports.RequestRepository,
	directory ports.DriverDirectory,
	publisher ports.EventPublisher,
	metrics ports.LifecycleMetrics,
) AcceptRequestCommandHandler {
	return AcceptRequestCommandHandler{
		assignment: newAssignment(operationAccept, repo, directory, publisher, metrics),
	}
}

func (h AcceptRequestCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptRequestCommand,
) (*request.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.assign(ctx, cmd.RequestID(), cmd.DriverID())
}

// assignment is the accept/assign workflow. The two operations share one contract and
// differ only in who initiates them.
type assignment struct {
	lifecycle
	operation string
	directory ports.DriverDirectory
}

func newAssignment(
	operation string,
	repo ports.RequestRepository,
	directory ports.DriverDirectory,
	publisher ports.EventPublisher,
	metrics ports.LifecycleMetrics,
) assignment {
	return assignment{
		lifecycle: newLifecycle(repo, publisher, metrics),
		operation: operation,
		directory: directory,
	}
}

func (a assignment) assign(ctx context.Context, requestID, driverID kernel.UUID) (*request.DeliveryRequest, error) {
	d, err := a.directory.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !d.IsAvailable() {
		return nil, errs.NewConflictError("driver", driverID, "not available")
	}

	r, err := a.apply(ctx, requestID, func(r *request.DeliveryRequest, now time.Time) error {
		return r.Accept(driverID, now)
	})
	if errors.Is(err, errs.ErrConflict) {
		a.metrics.AssignmentConflict(a.operation)
	}
	return r, err
}
