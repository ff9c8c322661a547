// Package ports defines the contracts between the dispatch core and its collaborators:
// the request store, the driver directory, the event sink and the metrics sink.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
)

// DefaultListLimit caps List when the filter does not set a limit.
const DefaultListLimit = 100

// RequestFilter selects requests for List. Zero fields do not filter.
type RequestFilter struct {
	Statuses      []request.Status
	DriverID      *kernel.UUID
	CreatedBefore time.Time
	Limit         int
}

// RequestPatch is everything a lifecycle operation may change on a stored request.
// Price and ETA are absent on purpose: they are written once by Add.
type RequestPatch struct {
	Status    request.Status
	DriverID  *kernel.UUID
	UpdatedAt time.Time
}

// PatchOf captures the mutable fields of r after an in-memory change.
func PatchOf(r *request.DeliveryRequest) RequestPatch {
	return RequestPatch{
		Status:    r.Status(),
		DriverID:  r.DriverID(),
		UpdatedAt: r.UpdatedAt(),
	}
}

// RequestRepository is the persistence contract of the lifecycle engine.
//
// The store is shared by every replica of the service, so no caller may assume it is the
// only writer. All lifecycle changes go through ConditionalUpdate, which the store must
// evaluate as one indivisible compare-and-set.
type RequestRepository interface {
	// Add stores a new request. A duplicate id is reported as errs.ConflictError.
	Add(ctx context.Context, r *request.DeliveryRequest) error

	// Get returns the request or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error)

	// List returns requests matching filter, oldest first.
	List(ctx context.Context, filter RequestFilter) ([]*request.DeliveryRequest, error)

	// ConditionalUpdate applies patch to request id if and only if its stored status and
	// driver still equal expected. It reports whether the patch was applied.
	//
	// false means the precondition no longer held or the request does not exist; the caller
	// re-reads to tell the two apart. An error (including context.DeadlineExceeded) means the
	// outcome is unknown and the caller must re-read state rather than retry blindly.
	ConditionalUpdate(ctx context.Context, id kernel.UUID, expected request.State, patch RequestPatch) (bool, error)
}
