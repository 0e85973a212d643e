package validator

import (
	"errors"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	NetworkID      string `validate:"notblank"`
	AccountAddress string `validate:"required_without=Xpub"`
	Xpub           string `validate:"required_without=AccountAddress"`
}

func TestFormatError(t *testing.T) {
	t.Run("should transform validation errors to formatted errors", func(t *testing.T) {
		type TestStruct struct {
			Name string `validate:"required"`
		}

		err := gvalidator.New().Struct(TestStruct{})
		require.Error(t, err)

		formattedErr := formatError(err)

		assert.ErrorIs(t, formattedErr, ErrValidationFailed)
		assert.Contains(t, formattedErr.Error(), "'Name': value '' does not meet the requirements for the 'required' validation")
	})

	t.Run("should return original error when not validation error", func(t *testing.T) {
		originalErr := errors.New("leveldb: closed")
		assert.Equal(t, originalErr, formatError(originalErr))
	})
}

func TestValidate(t *testing.T) {
	t.Run("should pass with address only", func(t *testing.T) {
		err := Validate(account{NetworkID: "evm--1", AccountAddress: "0xabc"})
		assert.NoError(t, err)
	})

	t.Run("should pass with xpub only", func(t *testing.T) {
		err := Validate(account{NetworkID: "btc--0", Xpub: "xpub6C..."})
		assert.NoError(t, err)
	})

	t.Run("should fail when network is blank", func(t *testing.T) {
		err := Validate(account{NetworkID: "   ", AccountAddress: "0xabc"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'NetworkID': value '   ' does not meet the requirements for the 'notblank' validation")
	})

	t.Run("should fail when both identifiers are missing", func(t *testing.T) {
		err := Validate(account{NetworkID: "evm--1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'AccountAddress'")
		assert.Contains(t, err.Error(), "'Xpub'")
	})

	t.Run("should fail when input is not struct", func(t *testing.T) {
		for _, input := range []any{"evm--1", 42, nil} {
			assert.Error(t, Validate(input))
		}
	})
}
