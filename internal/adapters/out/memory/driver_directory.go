package memory

import (
	"context"
	"slices"
	"sync"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// DriverDirectory is an in-memory ports.DriverDirectory. Put stands in for the external
// registry that owns driver state.
type DriverDirectory struct {
	mu      sync.RWMutex
	drivers map[kernel.UUID]*driver.Driver
}

var _ ports.DriverDirectory = (*DriverDirectory)(nil)

func NewDriverDirectory(drivers ...*driver.Driver) *DriverDirectory {
	d := &DriverDirectory{drivers: make(map[kernel.UUID]*driver.Driver, len(drivers))}
	for _, drv := range drivers {
		d.drivers[drv.ID()] = drv
	}
	return d
}

// Put inserts or replaces a driver. Drivers are immutable snapshots, so the pointer is kept.
func (d *DriverDirectory) Put(drv *driver.Driver) error {
	if err := drv.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.drivers[drv.ID()] = drv
	return nil
}

func (d *DriverDirectory) ListAvailable(ctx context.Context) ([]*driver.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	available := make([]*driver.Driver, 0, len(d.drivers))
	for _, drv := range d.drivers {
		if drv.IsAvailable() {
			available = append(available, drv)
		}
	}
	slices.SortFunc(available, func(a, b *driver.Driver) int {
		return a.ID().Compare(b.ID())
	})
	return available, nil
}

func (d *DriverDirectory) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	drv, ok := d.drivers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return drv, nil
}
