package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ExpiryResult reports one run of ExpireStaleRequestsCommandHandler.
type ExpiryResult struct {
	Expired int
	// Skipped counts requests that were accepted or cancelled while the run was in progress.
	Skipped int
}

// ExpireStaleRequestsCommandHandler cancels stale pending requests one by one, each through
// the same conditional update as a manual cancel. A request accepted in the meantime is
// skipped, never overwritten.
type ExpireStaleRequestsCommandHandler struct {
	lifecycle
}

func NewExpireStaleRequestsCommandHandler(
	repo ports.RequestRepository,
	publisher ports.EventPublisher,
	metrics ports.LifecycleMetrics,
) ExpireStaleRequestsCommandHandler {
	return ExpireStaleRequestsCommandHandler{
		lifecycle: newLifecycle(repo, publisher, metrics),
	}
}

func (h ExpireStaleRequestsCommandHandler) Handle(
	ctx context.Context,
	cmd ExpireStaleRequestsCommand,
) (ExpiryResult, error) {
	var result ExpiryResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	stale, err := h.repo.List(ctx, ports.RequestFilter{
		Statuses:      []request.Status{request.Pending},
		CreatedBefore: h.now().Add(-cmd.TTL()),
		Limit:         cmd.BatchSize(),
	})
	if err != nil {
		return result, err
	}

	for _, r := range stale {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		_, err = h.apply(ctx, r.ID(), func(current *request.DeliveryRequest, now time.Time) error {
			if current.Status() != request.Pending {
				return errs.NewConflictError("request", current.ID(),
					fmt.Sprintf("is %s, no longer pending", current.Status()))
			}
			return current.Transition(request.Cancelled, now)
		})
		switch {
		case err == nil:
			result.Expired++
		case errors.Is(err, errs.ErrConflict),
			errors.Is(err, errs.ErrInvalidTransition),
			errors.Is(err, errs.ErrObjectNotFound):
			result.Skipped++
		default:
			return result, err
		}
	}

	return result, nil
}
