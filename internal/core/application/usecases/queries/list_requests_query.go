package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// MaxListLimit bounds a single page of ListRequestsQuery.
const MaxListLimit = 500

var ErrListRequestsQueryIsNotConstructed = errors.New(
	"ListRequestsQuery must be created via NewListRequestsQuery constructor",
)

// ListRequestsQuery lists requests by status, driver and creation time, oldest first.
type ListRequestsQuery struct { //nolint:recvcheck //using for validation
	filter ports.RequestFilter
	guard  guard.ConstructorGuard
}

func NewListRequestsQuery(
	statuses []request.Status,
	driverID *kernel.UUID,
	createdBefore time.Time,
	limit int,
) (ListRequestsQuery, error) {
	var errList []error
	for _, s := range statuses {
		errList = append(errList, s.Validate())
	}
	if driverID != nil {
		errList = append(errList, driverID.Validate())
	}
	if limit < 0 || limit > MaxListLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeErrorWithCause(
			"limit", limit, 0, MaxListLimit, fmt.Errorf("0 selects the default of %d", ports.DefaultListLimit)))
	}
	if err := errors.Join(errList...); err != nil {
		return ListRequestsQuery{}, err
	}

	return ListRequestsQuery{
		filter: ports.RequestFilter{
			Statuses:      statuses,
			DriverID:      driverID,
			CreatedBefore: createdBefore,
			Limit:         limit,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListRequestsQueryIsNotConstructed)
}

type ListRequestsQueryHandler struct {
	repo ports.RequestRepository
}

func NewListRequestsQueryHandler(repo ports.RequestRepository) ListRequestsQueryHandler {
	return ListRequestsQueryHandler{repo: repo}
}

func (h ListRequestsQueryHandler) Handle(ctx context.Context, query ListRequestsQuery) ([]RequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.repo.List(ctx, query.filter)
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(found))
	for _, r := range found {
		views = append(views, NewRequestView(r))
	}
	return views, nil
}
