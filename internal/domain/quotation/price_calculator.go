package quotation

import "rsv-catalog/internal/pkg/money"

// Breakdown holds unrounded amounts; round only when displaying.
type Breakdown struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	Taxable        float64 `json:"taxable"`
	TaxAmount      float64 `json:"taxAmount"`
	Total          float64 `json:"total"`
}

type PriceCalculator interface {
	Calculate(items []Item, discount, tax Adjustment) Breakdown
}

// DefaultPriceCalculator applies subtotal, then discount, then tax on the discounted amount.
type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

func (pc *DefaultPriceCalculator) Calculate(items []Item, discount, tax Adjustment) Breakdown {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Quantity * it.UnitPrice
	}

	discountAmount := discount.Amount(subtotal)
	taxable := subtotal - discountAmount
	taxAmount := tax.Amount(taxable)

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Taxable:        taxable,
		TaxAmount:      taxAmount,
		Total:          taxable + taxAmount,
	}
}

// Rounded returns a copy with every amount rounded to cents.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Subtotal:       money.Round2(b.Subtotal),
		DiscountAmount: money.Round2(b.DiscountAmount),
		Taxable:        money.Round2(b.Taxable),
		TaxAmount:      money.Round2(b.TaxAmount),
		Total:          money.Round2(b.Total),
	}
}
