package catalog_test

import (
	"testing"

	"ordering/internal/adapters/out/catalog"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	teeID      = kernel.MustParseUUID("6f1c2a9e-0d5b-4c1e-9a57-1b0f3c8d2e01")
	ebookID    = kernel.MustParseUUID("6f1c2a9e-0d5b-4c1e-9a57-1b0f3c8d2e02")
	springID   = kernel.MustParseUUID("3a9d7c40-5e2f-4b8a-8c11-2d4e6f8a0b01")
	fiveOffID  = kernel.MustParseUUID("3a9d7c40-5e2f-4b8a-8c11-2d4e6f8a0b02")
	standardID = kernel.MustParseUUID("9b2e4d61-7a3c-4f0e-b5d8-3c6a9e1f2d01")
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load("testdata/catalog.yaml")
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	c := loadCatalog(t)

	variants, promotions, methods := c.Size()
	assert.Equal(t, 3, variants)
	assert.Equal(t, 3, promotions)
	assert.Equal(t, 1, methods)
}

func TestCatalog_GetVariant(t *testing.T) {
	c := loadCatalog(t)

	t.Run("should parse decimal prices per currency", func(t *testing.T) {
		v, err := c.GetVariant(t.Context(), teeID)
		require.NoError(t, err)

		usd, err := v.PriceIn("USD")
		require.NoError(t, err)
		assert.Equal(t, int64(1999), usd.Amount())

		eur, err := v.PriceIn("EUR")
		require.NoError(t, err)
		assert.Equal(t, int64(1850), eur.Amount())

		_, err = v.PriceIn("GBP")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		assert.Equal(t, "TEE-RED-M", v.SKU())
		assert.Equal(t, int64(250), v.WeightGrams())
		assert.True(t, v.IsPurchasable())
	})

	t.Run("should read flags", func(t *testing.T) {
		v, err := c.GetVariant(t.Context(), ebookID)
		require.NoError(t, err)
		assert.True(t, v.IsDigital())

		retired, err := c.GetVariant(t.Context(), kernel.MustParseUUID("6f1c2a9e-0d5b-4c1e-9a57-1b0f3c8d2e03"))
		require.NoError(t, err)
		assert.False(t, retired.IsPurchasable())
	})

	t.Run("should report unknown variant", func(t *testing.T) {
		_, err := c.GetVariant(t.Context(), kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCatalog_GetPromotionByCode(t *testing.T) {
	c := loadCatalog(t)

	p, err := c.GetPromotionByCode(t.Context(), " spring ")
	require.NoError(t, err)
	assert.Equal(t, springID, p.ID())
	assert.True(t, p.RequiresCode())

	_, err = c.GetPromotionByCode(t.Context(), "WINTER")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	auto, err := c.GetPromotion(t.Context(), fiveOffID)
	require.NoError(t, err)
	assert.False(t, auto.RequiresCode())
}

func TestCatalog_DrivesOrder(t *testing.T) {
	ctx := t.Context()
	c := loadCatalog(t)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USD", fixedNumber("R260314ABCDEF"))
	require.NoError(t, err)

	tee, err := c.GetVariant(ctx, teeID)
	require.NoError(t, err)
	_, err = o.AddLineItem(tee, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3998), o.ItemTotal())

	spring, err := c.GetPromotionByCode(ctx, "SPRING")
	require.NoError(t, err)
	require.NoError(t, o.ApplyPromotion(spring, "spring", spring.Calculator()))
	assert.Equal(t, int64(-400), o.AdjustmentTotal())

	require.NoError(t, o.Next())
	require.NoError(t, o.SetShippingAddress(kernel.NewUUID()))
	require.NoError(t, o.SetBillingAddress(kernel.NewUUID()))
	require.NoError(t, o.Next())

	standard, err := c.GetShippingMethod(ctx, standardID)
	require.NoError(t, err)
	require.NoError(t, o.SetShippingMethod(standard))

	// 500 g rounds up to 1 kg: 4.99 + 1.50
	assert.Equal(t, int64(649), o.ShipmentTotal())
	assert.Equal(t, int64(3998-400+649), o.GrandTotal())
}

func TestParse_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "bad uuid",
			yaml: "variants:\n  - id: nope\n    sku: X\n",
		},
		{
			name: "missing sku",
			yaml: "variants:\n  - id: 6f1c2a9e-0d5b-4c1e-9a57-1b0f3c8d2e01\n",
			want: errs.ErrValueIsRequired,
		},
		{
			name: "bad price",
			yaml: "variants:\n  - id: 6f1c2a9e-0d5b-4c1e-9a57-1b0f3c8d2e01\n    sku: X\n    prices: {USD: ten}\n",
			want: errs.ErrValueIsInvalid,
		},
		{
			name: "unknown promotion kind",
			yaml: "promotions:\n  - id: 3a9d7c40-5e2f-4b8a-8c11-2d4e6f8a0b01\n    kind: bogo\n",
			want: errs.ErrValueIsInvalid,
		},
		{
			name: "percent above 100",
			yaml: "promotions:\n  - id: 3a9d7c40-5e2f-4b8a-8c11-2d4e6f8a0b01\n    kind: percentage_order\n    percent: \"120\"\n",
			want: errs.ErrValueIsOutOfRange,
		},
		{
			name: "duplicate code",
			yaml: "promotions:\n" +
				"  - {id: 3a9d7c40-5e2f-4b8a-8c11-2d4e6f8a0b01, code: A, kind: flat_order, amount: 1}\n" +
				"  - {id: 3a9d7c40-5e2f-4b8a-8c11-2d4e6f8a0b02, code: a, kind: flat_order, amount: 1}\n",
			want: errs.ErrConflict,
		},
		{
			name: "not yaml",
			yaml: "variants: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

type fixedNumber string

func (n fixedNumber) Generate() (string, error) { return string(n), nil }
