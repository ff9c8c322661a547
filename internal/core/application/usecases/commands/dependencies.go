// Package commands contains the operations that change delivery requests.
//
// Every command follows the same pattern: the command object is validated on construction,
// the handler loads the aggregate, applies the change in memory and persists it with a
// single conditional update guarded on the state it observed. Handlers never retry.
package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// mutation changes a loaded request in memory. It must not have side effects beyond r.
type mutation func(r *request.DeliveryRequest, now time.Time) error

// lifecycle is the compare-and-set loop shared by every handler that changes a stored request.
type lifecycle struct {
	repo      ports.RequestRepository
	publisher ports.EventPublisher
	metrics   ports.LifecycleMetrics
	now       func() time.Time
}

func newLifecycle(
	repo ports.RequestRepository,
	publisher ports.EventPublisher,
	metrics ports.LifecycleMetrics,
) lifecycle {
	if metrics == nil {
		metrics = ports.NopLifecycleMetrics{}
	}
	return lifecycle{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

// apply loads request id, applies mutate and stores the result only if nobody changed the
// request in between. A lost race is reported as errs.ConflictError, a vanished request
// as errs.ObjectNotFoundError.
func (l lifecycle) apply(ctx context.Context, id kernel.UUID, mutate mutation) (*request.DeliveryRequest, error) {
	r, err := l.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	expected := r.State()
	if err = mutate(r, l.now()); err != nil {
		return nil, err
	}

	applied, err := l.repo.ConditionalUpdate(ctx, id, expected, ports.PatchOf(r))
	if err != nil {
		return nil, fmt.Errorf("conditional update of request %s: %w", id, err)
	}
	if !applied {
		current, err := l.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, errs.NewConflictError("request", id,
			fmt.Sprintf("changed concurrently from %s to %s", expected.Status, current.Status()))
	}

	events := r.PullEvents()
	for _, e := range events {
		l.metrics.StatusChanged(e.From, e.To)
	}
	l.publisher.Publish(ctx, events...)

	return r, nil
}
