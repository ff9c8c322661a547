package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptRequestCommandIsNotConstructed = errors.New(
	"AcceptRequestCommand must be created via NewAcceptRequestCommand constructor",
)

// AcceptRequestCommand is a driver's attempt to take a pending request.
// At most one of any number of concurrent attempts on the same request succeeds.
type AcceptRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptRequestCommand(requestID, driverID kernel.UUID) (AcceptRequestCommand, error) {
	cmd := AcceptRequestCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(requestID.Validate(), driverID.Validate()); err != nil {
		return AcceptRequestCommand{}, err
	}
	cmd.requestID = requestID
	cmd.driverID = driverID

	return cmd, nil
}

func (c AcceptRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRequestCommandIsNotConstructed)
}

func (c AcceptRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c AcceptRequestCommand) DriverID() kernel.UUID  { return c.driverID }
