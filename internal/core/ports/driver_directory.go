package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverDirectory is the read side of the externally owned driver registry.
type DriverDirectory interface {
	// ListAvailable returns a snapshot of the drivers currently marked available.
	ListAvailable(ctx context.Context) ([]*driver.Driver, error)

	// Get returns the current state of one driver or errs.ObjectNotFoundError.
	// Assignment reads through Get so availability is checked at assignment time.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}
