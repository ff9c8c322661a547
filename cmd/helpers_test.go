package cmd

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/require"
)

func mustExpiry(t *testing.T) commands.ExpireStaleRequestsCommand {
	t.Helper()
	cmd, err := commands.NewExpireStaleRequestsCommand(time.Hour, 10)
	require.NoError(t, err)
	return cmd
}
