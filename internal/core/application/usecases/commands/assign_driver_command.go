package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand is an operator placing a driver on a pending request.
// It is held to the same rules as a driver's own acceptance: an already assigned request
// is never overwritten.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(requestID, driverID kernel.UUID) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(requestID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	cmd.requestID = requestID
	cmd.driverID = driverID

	return cmd, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) RequestID() kernel.UUID { return c.requestID }
func (c AssignDriverCommand) DriverID() kernel.UUID  { return c.driverID }
