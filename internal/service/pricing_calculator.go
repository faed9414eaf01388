package service

import (
	"salon-booking/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var (
	DefaultDiscountRate = decimal.RequireFromString("0.10")
	DefaultTaxRate      = decimal.RequireFromString("0.05")
)

// PricingCalculator produces the display-only quote of a draft.
// Listed prices are taken as already discounted by discountRate, so the
// subtotal reconstructs the pre-discount reference price. The marketplace
// computes the real charge when the order is created.
type PricingCalculator struct {
	discountRate decimal.Decimal
	taxRate      decimal.Decimal
}

func NewPricingCalculator(discountRate, taxRate decimal.Decimal) *PricingCalculator {
	if discountRate.IsNegative() || discountRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		discountRate = DefaultDiscountRate
	}
	if taxRate.IsNegative() {
		taxRate = DefaultTaxRate
	}
	return &PricingCalculator{
		discountRate: discountRate,
		taxRate:      taxRate,
	}
}

// Quote computes
//
//	subtotal = Σ(price / (1 - discountRate))
//	discount = subtotal × discountRate
//	tax      = Σ(price) × taxRate
//	total    = Σ(price) + tax
//
// at full decimal precision.
func (p *PricingCalculator) Quote(services []entity.ServiceSelection) entity.Quote {
	keep := decimal.NewFromInt(1).Sub(p.discountRate)

	sum := decimal.Zero
	subtotal := decimal.Zero
	duration := 0
	for _, s := range services {
		sum = sum.Add(s.Price)
		subtotal = subtotal.Add(s.Price.Div(keep))
		duration += s.Duration
	}

	tax := sum.Mul(p.taxRate)

	return entity.Quote{
		Subtotal:      subtotal,
		Discount:      subtotal.Mul(p.discountRate),
		Tax:           tax,
		Total:         sum.Add(tax),
		ItemCount:     len(services),
		TotalDuration: duration,
	}
}
