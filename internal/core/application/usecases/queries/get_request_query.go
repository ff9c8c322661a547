package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

// GetRequestQuery reads one request by id. After a timed out accept this is how a caller
// learns the actual outcome.
type GetRequestQuery struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetRequestQuery(requestID kernel.UUID) (GetRequestQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetRequestQuery{}, err
	}
	return GetRequestQuery{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

type GetRequestQueryHandler struct {
	repo ports.RequestRepository
}

func NewGetRequestQueryHandler(repo ports.RequestRepository) GetRequestQueryHandler {
	return GetRequestQueryHandler{repo: repo}
}

func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (RequestView, error) {
	if err := query.Validate(); err != nil {
		return RequestView{}, err
	}

	r, err := h.repo.Get(ctx, query.requestID)
	if err != nil {
		return RequestView{}, err
	}
	return NewRequestView(r), nil
}
