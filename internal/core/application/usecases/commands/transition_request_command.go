package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/guard"
)

var ErrTransitionRequestCommandIsNotConstructed = errors.New(
	"TransitionRequestCommand must be created via NewTransitionRequestCommand constructor",
)

// TransitionRequestCommand moves a request along one edge of the lifecycle graph,
// e.g. accepted -> picked_up or pending -> cancelled.
type TransitionRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	target    request.Status

	guard guard.ConstructorGuard
}

func NewTransitionRequestCommand(requestID kernel.UUID, target request.Status) (TransitionRequestCommand, error) {
	cmd := TransitionRequestCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(requestID.Validate(), target.Validate()); err != nil {
		return TransitionRequestCommand{}, err
	}
	cmd.requestID = requestID
	cmd.target = target

	return cmd, nil
}

func (c TransitionRequestCommand) Validate() error {
	return c.guard.Validate(ErrTransitionRequestCommandIsNotConstructed)
}

func (c TransitionRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c TransitionRequestCommand) Target() request.Status { return c.target }
