package pricing

import "math"

// DiscountType states whether an adjustment value is a percentage of the
// base amount or an absolute currency amount.
type DiscountType string

const (
	// Percentage interprets the value as a percent of the base price.
	Percentage DiscountType = "PERCENTAGE"
	// Fixed interprets the value as an absolute amount.
	Fixed DiscountType = "FIXED"
)

// Adjustment pairs an adjustment value with how it is interpreted.
type Adjustment struct {
	Value float64
	Type  DiscountType
}

// AmountAgainst resolves the adjustment to an absolute amount for the
// given base price.
func (a Adjustment) AmountAgainst(base float64) float64 {
	if a.Type == Percentage {
		return base * a.Value / 100
	}
	return a.Value
}

// TotalInputs carries the checkout-level amounts feeding the payable total.
type TotalInputs struct {
	BasePrice float64
	Shipping  float64
	Tax       Adjustment
	Promo     Adjustment
	Member    Adjustment
}

// Total computes the payable amount. Tax, promotion and membership discount
// are each resolved against BasePrice alone and never against each other:
// sequential non-compounding adjustments are the business rule here, and
// changing that would silently change financial output. Tax is added,
// promotion and membership are subtracted, shipping is added last unmodified.
func Total(in TotalInputs) float64 {
	tax := in.Tax.AmountAgainst(in.BasePrice)
	promo := in.Promo.AmountAgainst(in.BasePrice)
	member := in.Member.AmountAgainst(in.BasePrice)
	return in.BasePrice + tax - promo - member + in.Shipping
}

// DiscountedPrice applies a percentage-off list-price discount, distinct
// from the checkout-level adjustments above. The percent is clamped to
// [0,100] without error since it comes from trusted product data, and the
// result is rounded to 2 decimal places.
func DiscountedPrice(price, discountPercent float64) float64 {
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}
	discounted := price - price*discountPercent/100
	return math.Round(discounted*100) / 100
}
