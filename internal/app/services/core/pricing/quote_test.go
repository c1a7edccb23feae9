package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuote(t *testing.T) {
	t.Run("Discounted medicine purchase", func(t *testing.T) {
		quote, err := NewQuote(decimal.RequireFromString("0.01"), decimal.NewFromInt(20), 3)
		require.NoError(t, err)

		assert.True(t, decimal.RequireFromString("0.008").Equal(quote.FinalUnitPrice), quote.FinalUnitPrice.String())
		assert.True(t, decimal.RequireFromString("0.024").Equal(quote.TotalPrice), quote.TotalPrice.String())

		display := quote.Display()
		assert.Equal(t, "0.0080", display.FinalUnitPrice)
		assert.Equal(t, "0.0240", display.TotalPrice)
		assert.Equal(t, "0.0100", display.BasePrice)
	})

	t.Run("Rounding happens only at display time", func(t *testing.T) {
		quote, err := NewQuote(decimal.RequireFromString("0.00003"), decimal.NewFromInt(10), 1000)
		require.NoError(t, err)

		assert.True(t, decimal.RequireFromString("0.027").Equal(quote.TotalPrice))
		assert.Equal(t, "0.0000", FormatAmount(quote.FinalUnitPrice))
		assert.Equal(t, "0.0270", quote.Display().TotalPrice)
	})

	t.Run("Discount is clamped", func(t *testing.T) {
		quote, err := NewQuote(decimal.NewFromInt(100), decimal.NewFromInt(95), 1)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(90).Equal(quote.DiscountPercent))
		assert.True(t, decimal.NewFromInt(10).Equal(quote.FinalUnitPrice))

		quote, err = NewQuote(decimal.NewFromInt(100), decimal.NewFromInt(-5), 1)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(quote.FinalUnitPrice))
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		_, err := NewQuote(decimal.NewFromInt(-1), decimal.Zero, 1)
		assert.ErrorIs(t, err, ErrNegativeBasePrice)
		_, err = NewQuote(decimal.NewFromInt(1), decimal.Zero, -1)
		assert.ErrorIs(t, err, ErrNegativeQuantity)
	})
}

func TestFinalUnitPriceMonotonic(t *testing.T) {
	base := decimal.RequireFromString("12.3456")
	previous := FinalUnitPrice(base, decimal.Zero)
	for discount := int64(1); discount <= 100; discount++ {
		current := FinalUnitPrice(base, decimal.NewFromInt(discount))
		assert.True(t, current.LessThanOrEqual(previous), "discount %d", discount)
		previous = current
	}
}

func TestTotalIsQuantityTimesUnit(t *testing.T) {
	base := decimal.RequireFromString("0.0333")
	discount := decimal.NewFromInt(33)
	for quantity := int64(0); quantity <= 50; quantity++ {
		quote, err := NewQuote(base, discount, quantity)
		require.NoError(t, err)
		assert.True(t, quote.FinalUnitPrice.Mul(decimal.NewFromInt(quantity)).Equal(quote.TotalPrice))
	}
}
