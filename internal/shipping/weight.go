package shipping

import "math"

// Item is one cart line sized for shipping. Dimensions are per unit;
// Quantity multiplies the chargeable weight.
type Item struct {
	WeightG  float64
	LengthCM float64
	WidthCM  float64
	HeightCM float64
	Quantity int
}

// TotalWeight sums the chargeable weight of the items in kilograms. Each
// item is billed at the greater of its actual and volumetric weight, the
// latter being volume divided by volumeDivider. The returned roundedKg is
// the ceiling of the total and is the value used for zone-rate pricing;
// totalKg is retained unrounded for reporting.
func TotalWeight(items []Item, volumeDivider float64) (totalKg, roundedKg float64) {
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		actual := it.WeightG / 1000
		volumetric := (it.LengthCM * it.WidthCM * it.HeightCM) / volumeDivider
		chargeable := math.Max(actual, volumetric)
		totalKg += chargeable * float64(it.Quantity)
	}
	return totalKg, math.Ceil(totalKg)
}
