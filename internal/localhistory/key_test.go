package localhistory

import (
	"testing"

	"github.com/gabapcia/localhistory/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKey(t *testing.T) {
	t.Run("should lower-case account addresses", func(t *testing.T) {
		key, err := BuildKey(AccountIdentifier{NetworkID: "evm--1", AccountAddress: "0xAbCdEf"})
		require.NoError(t, err)
		assert.Equal(t, AccountKey("evm--1_0xabcdef"), key)
	})

	t.Run("should treat addresses case-insensitively", func(t *testing.T) {
		upper, err := BuildKey(AccountIdentifier{NetworkID: "evm--1", AccountAddress: "0xABC"})
		require.NoError(t, err)
		lower, err := BuildKey(AccountIdentifier{NetworkID: "evm--1", AccountAddress: "0xabc"})
		require.NoError(t, err)

		assert.Equal(t, upper, lower)
	})

	t.Run("should keep xpub verbatim and prefer it over the address", func(t *testing.T) {
		key, err := BuildKey(AccountIdentifier{NetworkID: "btc--0", AccountAddress: "bc1q", Xpub: "xpub6CUGRUo"})
		require.NoError(t, err)
		assert.Equal(t, AccountKey("btc--0_xpub6CUGRUo"), key)
	})

	t.Run("should separate networks", func(t *testing.T) {
		a, err := BuildKey(AccountIdentifier{NetworkID: "evm--1", AccountAddress: "0xabc"})
		require.NoError(t, err)
		b, err := BuildKey(AccountIdentifier{NetworkID: "evm--56", AccountAddress: "0xabc"})
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("should fail when both identifiers are missing", func(t *testing.T) {
		_, err := BuildKey(AccountIdentifier{NetworkID: "evm--1"})
		assert.ErrorIs(t, err, ErrMissingIdentifier)
	})

	t.Run("should treat blank identifiers as missing", func(t *testing.T) {
		_, err := BuildKey(AccountIdentifier{NetworkID: "evm--1", AccountAddress: "  ", Xpub: "\t"})
		assert.ErrorIs(t, err, ErrMissingIdentifier)
	})

	t.Run("should fail when network is missing", func(t *testing.T) {
		_, err := BuildKey(AccountIdentifier{AccountAddress: "0xabc"})
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.NotErrorIs(t, err, ErrMissingIdentifier)
	})

	t.Run("should reject a network id containing the separator", func(t *testing.T) {
		_, err := BuildKey(AccountIdentifier{NetworkID: "a_b", AccountAddress: "c"})
		assert.ErrorIs(t, err, validator.ErrValidationFailed)

		key, err := BuildKey(AccountIdentifier{NetworkID: "a", AccountAddress: "b_c"})
		require.NoError(t, err)
		assert.Equal(t, AccountKey("a_b_c"), key)
	})
}

func TestBuildKeys(t *testing.T) {
	t.Run("should build a key per identifier", func(t *testing.T) {
		keys, err := buildKeys([]AccountIdentifier{evmAccount, btcAccount})
		require.NoError(t, err)
		assert.Equal(t, []AccountKey{"evm--1_0xabc", "btc--0_xpub6CUGRUo"}, keys)
	})

	t.Run("should fail on the first invalid identifier", func(t *testing.T) {
		_, err := buildKeys([]AccountIdentifier{evmAccount, {NetworkID: "evm--1"}})
		assert.ErrorIs(t, err, ErrMissingIdentifier)
	})
}
