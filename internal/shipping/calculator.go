package shipping

import "math"

// Config carries the tunable shipping parameters. Values are taken as-is:
// the calculator never clamps or sanitises, so a negative rate surfaces as
// a visibly wrong fee instead of being masked.
type Config struct {
	VolumeDivider float64
	PricePerKG    float64
	PricePerKM    float64
	BasePrice     float64
	MinShipping   float64
	OriginLat     float64
	OriginLong    float64
	EarthRadiusKM float64
}

// Result traces every intermediate value of a fee calculation so the
// checkout UI can explain the fee and audits can re-derive it.
type Result struct {
	TotalWeightKG   float64
	RoundedWeightKG float64
	DistanceKM      float64
	Zone            Zone
	WeightCost      float64
	DistanceCost    float64
	ShippingRaw     float64
	ShippingFinal   float64
}

// Calculate composes weight, distance and zone into the final shipping fee.
// A zone price override bypasses the formula (the multiplier is ignored);
// the MinShipping floor applies in every branch, overrides included.
func Calculate(items []Item, distanceKm float64, cfg Config, table Table) Result {
	totalKg, roundedKg := TotalWeight(items, cfg.VolumeDivider)
	zone := table.Resolve(distanceKm)

	weightCost := roundedKg * cfg.PricePerKG
	distanceCost := distanceKm * cfg.PricePerKM

	var raw float64
	if zone.PriceOverride != nil {
		raw = *zone.PriceOverride
	} else {
		multiplier := 1.0
		if zone.Multiplier != nil {
			multiplier = *zone.Multiplier
		}
		raw = (cfg.BasePrice + weightCost + distanceCost) * multiplier
	}

	return Result{
		TotalWeightKG:   totalKg,
		RoundedWeightKG: roundedKg,
		DistanceKM:      distanceKm,
		Zone:            zone,
		WeightCost:      weightCost,
		DistanceCost:    distanceCost,
		ShippingRaw:     raw,
		ShippingFinal:   math.Max(raw, cfg.MinShipping),
	}
}
