package payment_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(amount int64) kernel.Money {
	m, _ := kernel.NewMoney(amount, "USD")
	return m
}

func TestNewPayment(t *testing.T) {
	t.Run("creates pending payment", func(t *testing.T) {
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), usd(2000), kernel.NewUUID(), payment.MethodCard)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, payment.Pending, p.Status())
		assert.False(t, p.IsSettled())
		assert.Equal(t, int64(2000), p.Amount().Amount())
	})

	t.Run("accepts zero amount", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), usd(0), kernel.NewUUID(), payment.MethodGiftCard)

		require.NoError(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), usd(-1), kernel.NewUUID(), payment.MethodCard)

		assert.Nil(t, p)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("joins independent validation failures", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.UUID{}, kernel.UUID{}, usd(10), kernel.NewUUID(), "cheque")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "cheque")
	})
}

func TestPayment_Lifecycle(t *testing.T) {
	newPending := func(t *testing.T) *payment.Payment {
		t.Helper()
		p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), usd(500), kernel.NewUUID(), payment.MethodCard)
		require.NoError(t, err)
		return p
	}

	t.Run("settle", func(t *testing.T) {
		p := newPending(t)

		require.NoError(t, p.Settle())
		assert.True(t, p.IsSettled())
	})

	t.Run("cannot settle twice", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Settle())

		err := p.Settle()

		require.ErrorIs(t, err, payment.ErrPaymentIsNotPending)
		assert.Equal(t, payment.Settled, p.Status())
	})

	t.Run("failed payment cannot be settled", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Fail())

		require.ErrorIs(t, p.Settle(), payment.ErrPaymentIsNotPending)
		assert.Equal(t, payment.Failed, p.Status())
	})

	t.Run("void", func(t *testing.T) {
		p := newPending(t)

		require.NoError(t, p.Void())
		assert.Equal(t, payment.Voided, p.Status())
	})
}

func TestParseMethodType(t *testing.T) {
	m, err := payment.ParseMethodType(" Card ")
	require.NoError(t, err)
	assert.Equal(t, payment.MethodCard, m)

	_, err = payment.ParseMethodType("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Settled", payment.Settled.String())
	assert.Equal(t, "Unknown", payment.Status(42).String())
	require.Error(t, payment.Status(42).Validate())
	require.Error(t, payment.Unknown.Validate())
}
