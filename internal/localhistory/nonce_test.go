package localhistory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_PendingNonces(t *testing.T) {
	key := AccountKey("evm--1_0xabc")

	withPending := func(t *testing.T, txs ...HistoryTx) *service {
		t.Helper()

		svc, blobs := newTestService(t)
		seed(t, blobs, Document{PendingTxs: map[AccountKey][]HistoryTx{key: txs}})
		return svc
	}

	t.Run("should report no nonce for an empty pending list", func(t *testing.T) {
		svc := withPending(t)

		_, ok, err := svc.MaxPendingNonce(t.Context(), evmAccount)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = svc.MinPendingNonce(t.Context(), evmAccount)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should return the extremes of the pending nonces", func(t *testing.T) {
		svc := withPending(t,
			HistoryTx{ID: "a", Status: StatusPending, Nonce: nonce(3), UpdatedAt: 3},
			HistoryTx{ID: "b", Status: StatusPending, Nonce: nonce(1), UpdatedAt: 2},
			HistoryTx{ID: "c", Status: StatusPending, Nonce: nonce(5), UpdatedAt: 1},
		)

		maxNonce, ok, err := svc.MaxPendingNonce(t.Context(), evmAccount)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(5), maxNonce)

		minNonce, ok, err := svc.MinPendingNonce(t.Context(), evmAccount)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(1), minNonce)

		nonces, err := svc.PendingNonces(t.Context(), evmAccount)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1, 5}, nonces)
	})

	t.Run("should report no nonce when a pending record lacks one", func(t *testing.T) {
		svc := withPending(t,
			HistoryTx{ID: "a", Status: StatusPending, Nonce: nonce(3)},
			HistoryTx{ID: "b", Status: StatusPending},
		)

		_, ok, err := svc.MaxPendingNonce(t.Context(), evmAccount)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = svc.MinPendingNonce(t.Context(), evmAccount)
		require.NoError(t, err)
		assert.False(t, ok)

		nonces, err := svc.PendingNonces(t.Context(), evmAccount)
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, nonces)
	})

	t.Run("should handle a zero nonce", func(t *testing.T) {
		svc := withPending(t, HistoryTx{ID: "a", Status: StatusPending, Nonce: nonce(0)})

		minNonce, ok, err := svc.MinPendingNonce(t.Context(), evmAccount)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Zero(t, minNonce)
	})

	t.Run("should fail on a missing identifier", func(t *testing.T) {
		svc := withPending(t)

		_, _, err := svc.MaxPendingNonce(t.Context(), AccountIdentifier{NetworkID: "evm--1"})
		assert.ErrorIs(t, err, ErrMissingIdentifier)
	})
}
