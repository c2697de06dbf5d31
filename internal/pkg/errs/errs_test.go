package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("line item", "123")

		assert.Equal(t, "line item", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: line item 123", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("order", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: order 123 (cause: record not found)", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.ErrorIs(t, err, cause)
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("payment", 456)
		assert.Equal(t, "object not found: payment 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("currency")

		assert.Equal(t, "currency", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: currency", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("cart is empty")
		err := errs.NewValueIsInvalidErrorWithCause("state", cause)

		assert.Equal(t, "value is invalid: state (cause: cart is empty)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, cause)
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 10000)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 10000, err.Max)
		assert.Equal(t, "value is out of range: 0 is quantity, min value is 1, max value is 10000", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("amount", -5, 0, 100, cause)

		assert.Equal(t,
			"value is out of range: -5 is amount, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		require.ErrorIs(t, err, cause)
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("variant")

	assert.Equal(t, "value is required: variant", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestConflictError(t *testing.T) {
	cause := errors.New("another promotion is applied")
	err := errs.NewConflictErrorWithCause("promotion", cause)

	assert.Equal(t, "conflict: promotion (cause: another promotion is applied)", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)
	require.ErrorIs(t, err, cause)
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("order")

	assert.Equal(t, "version is invalid: order", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Code
	}{
		{name: "nil", err: nil, want: ""},
		{name: "required", err: errs.NewValueIsRequiredError("x"), want: errs.CodeValidation},
		{name: "invalid", err: errs.NewValueIsInvalidError("x"), want: errs.CodeValidation},
		{name: "out of range", err: errs.NewValueIsOutOfRangeError("x", 1, 2, 3), want: errs.CodeValidation},
		{name: "not found", err: errs.NewObjectNotFoundError("x", 1), want: errs.CodeNotFound},
		{name: "conflict", err: errs.NewConflictError("x"), want: errs.CodeConflict},
		{name: "stale version", err: errs.NewVersionIsInvalidError("x"), want: errs.CodeConflict},
		{name: "wrapped", err: fmt.Errorf("load: %w", errs.NewObjectNotFoundError("x", 1)), want: errs.CodeNotFound},
		{name: "joined", err: errors.Join(errors.New("a"), errs.NewValueIsInvalidError("x")), want: errs.CodeValidation},
		{name: "foreign", err: errors.New("boom"), want: errs.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.CodeOf(tt.err))
		})
	}
}
