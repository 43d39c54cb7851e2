package treasury

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultTransferAccumulates(t *testing.T) {
	v := NewVault()
	ctx := context.Background()

	require.NoError(t, v.Transfer(ctx, "0xAlice", 30))
	require.NoError(t, v.Transfer(ctx, "0xAlice", 20))
	require.NoError(t, v.Transfer(ctx, "0xBob", 5))

	assert.Equal(t, int64(50), v.Balance("0xAlice"))
	assert.Equal(t, int64(5), v.Balance("0xBob"))
	assert.Equal(t, int64(0), v.Balance("0xNobody"))
}

func TestVaultTransferValidation(t *testing.T) {
	v := NewVault()
	ctx := context.Background()

	assert.Error(t, v.Transfer(ctx, "", 10))
	assert.Error(t, v.Transfer(ctx, "0xAlice", 0))
	assert.Error(t, v.Transfer(ctx, "0xAlice", -1))
	assert.Equal(t, int64(0), v.Balance("0xAlice"))
}

func TestVaultTransferCancelledContext(t *testing.T) {
	v := NewVault()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, v.Transfer(ctx, "0xAlice", 10))
	assert.Equal(t, int64(0), v.Balance("0xAlice"))
}
