package memory_test

import (
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverDirectory(t *testing.T) {
	ctx := t.Context()
	here := kernel.MustGeoPoint(5.6, -0.19)

	free, err := driver.NewDriver(kernel.NewUUID(), &here, true, kernel.Car, 4.9, 10)
	require.NoError(t, err)
	busy, err := driver.NewDriver(kernel.NewUUID(), &here, false, kernel.Car, 4.1, 3)
	require.NoError(t, err)

	directory := memory.NewDriverDirectory(free)
	require.NoError(t, directory.Put(busy))

	available, err := directory.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.True(t, available[0].ID().IsEqual(free.ID()))

	got, err := directory.Get(ctx, busy.ID())
	require.NoError(t, err)
	assert.False(t, got.IsAvailable())

	_, err = directory.Get(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.Error(t, directory.Put(&driver.Driver{}))
}
