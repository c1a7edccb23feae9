package pricing

import (
	"errors"
	"medimarket-service/internal/pkg/constvars"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeBasePrice = errors.New("base price must not be negative")
	ErrNegativeQuantity  = errors.New("quantity must not be negative")
)

var (
	hundred     = decimal.NewFromInt(100)
	maxDiscount = decimal.NewFromInt(constvars.MaxDiscountPercent)
)

// Quote keeps full precision; rounding happens only in Display.
type Quote struct {
	BasePrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Quantity        int64
	FinalUnitPrice  decimal.Decimal
	TotalPrice      decimal.Decimal
}

type QuoteDisplay struct {
	BasePrice       string `json:"base_price"`
	DiscountPercent string `json:"discount_percent"`
	Quantity        int64  `json:"quantity"`
	FinalUnitPrice  string `json:"final_unit_price"`
	TotalPrice      string `json:"total_price"`
}

// ClampDiscount bounds a discount percentage to [0, 90].
func ClampDiscount(discountPercent decimal.Decimal) decimal.Decimal {
	if discountPercent.IsNegative() {
		return decimal.Zero
	}
	if discountPercent.GreaterThan(maxDiscount) {
		return maxDiscount
	}
	return discountPercent
}

// FinalUnitPrice is basePrice * (1 - discount/100) with the discount clamped.
func FinalUnitPrice(basePrice, discountPercent decimal.Decimal) decimal.Decimal {
	coefficient := decimal.NewFromInt(1).Sub(ClampDiscount(discountPercent).Div(hundred))
	return basePrice.Mul(coefficient)
}

func NewQuote(basePrice, discountPercent decimal.Decimal, quantity int64) (Quote, error) {
	if basePrice.IsNegative() {
		return Quote{}, ErrNegativeBasePrice
	}
	if quantity < 0 {
		return Quote{}, ErrNegativeQuantity
	}
	discount := ClampDiscount(discountPercent)
	unit := FinalUnitPrice(basePrice, discount)
	return Quote{
		BasePrice:       basePrice,
		DiscountPercent: discount,
		Quantity:        quantity,
		FinalUnitPrice:  unit,
		TotalPrice:      unit.Mul(decimal.NewFromInt(quantity)),
	}, nil
}

func (q Quote) Display() QuoteDisplay {
	return QuoteDisplay{
		BasePrice:       FormatAmount(q.BasePrice),
		DiscountPercent: q.DiscountPercent.String(),
		Quantity:        q.Quantity,
		FinalUnitPrice:  FormatAmount(q.FinalUnitPrice),
		TotalPrice:      FormatAmount(q.TotalPrice),
	}
}

// FormatAmount renders an amount with the fixed display precision.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(constvars.DisplayDecimalPlaces)
}
