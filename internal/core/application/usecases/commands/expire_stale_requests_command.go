package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrExpireStaleRequestsCommandIsNotConstructed = errors.New(
	"ExpireStaleRequestsCommand must be created via NewExpireStaleRequestsCommand constructor",
)

// ExpireStaleRequestsCommand cancels pending requests that nobody accepted within ttl.
// At most batchSize requests are handled per run.
type ExpireStaleRequestsCommand struct { //nolint:recvcheck //using for validation
	ttl       time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireStaleRequestsCommand(ttl time.Duration, batchSize int) (ExpireStaleRequestsCommand, error) {
	var errList []error
	if ttl <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("ttl", fmt.Errorf("%s is not positive", ttl)))
	}
	if batchSize <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"batch_size", fmt.Errorf("%d is not positive", batchSize)))
	}
	if err := errors.Join(errList...); err != nil {
		return ExpireStaleRequestsCommand{}, err
	}

	return ExpireStaleRequestsCommand{
		ttl:       ttl,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireStaleRequestsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleRequestsCommandIsNotConstructed)
}

func (c ExpireStaleRequestsCommand) TTL() time.Duration { return c.ttl }
func (c ExpireStaleRequestsCommand) BatchSize() int     { return c.batchSize }
