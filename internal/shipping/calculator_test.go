package shipping

import "testing"

func testConfig() Config {
	return Config{
		VolumeDivider: 6000,
		PricePerKG:    5000,
		PricePerKM:    100,
		BasePrice:     10000,
		MinShipping:   15000,
		OriginLat:     -6.2088,
		OriginLong:    106.8456,
		EarthRadiusKM: 6371,
	}
}

func TestCalculateZeroDistanceFloor(t *testing.T) {
	// Origin equals destination: zero weight and distance cost, Z1 ×1.0,
	// raw = 10000 and the 15000 floor wins.
	res := Calculate(nil, 0, testConfig(), testTable())
	if res.Zone.Code != "Z1" {
		t.Fatalf("distance 0 must resolve to the nearest tier, got %s", res.Zone.Code)
	}
	if res.ShippingRaw != 10000 {
		t.Fatalf("expected raw 10000, got %f", res.ShippingRaw)
	}
	if res.ShippingFinal != 15000 {
		t.Fatalf("expected floored fee 15000, got %f", res.ShippingFinal)
	}
}

func TestCalculateFormula(t *testing.T) {
	items := []Item{{WeightG: 1200, Quantity: 1}}
	res := Calculate(items, 50, testConfig(), testTable())
	// rounded weight 2 kg -> 10000 weight cost, 50 km -> 5000 distance cost,
	// Z3 multiplier 1.5: (10000 + 10000 + 5000) * 1.5 = 37500.
	if res.RoundedWeightKG != 2 {
		t.Fatalf("expected rounded weight 2, got %f", res.RoundedWeightKG)
	}
	if res.WeightCost != 10000 {
		t.Fatalf("expected weight cost 10000, got %f", res.WeightCost)
	}
	if res.DistanceCost != 5000 {
		t.Fatalf("expected distance cost 5000, got %f", res.DistanceCost)
	}
	if res.Zone.Code != "Z3" {
		t.Fatalf("expected Z3, got %s", res.Zone.Code)
	}
	if res.ShippingRaw != 37500 || res.ShippingFinal != 37500 {
		t.Fatalf("expected fee 37500, got raw %f final %f", res.ShippingRaw, res.ShippingFinal)
	}
}

func TestCalculateOverrideBypassesFormula(t *testing.T) {
	table := NewTable([]Tier{
		{Zone: Zone{Code: "Z1", Multiplier: float(3.0), PriceOverride: float(20000)}, MaxKM: 10},
	}, nil)
	items := []Item{{WeightG: 9000, Quantity: 5}}
	res := Calculate(items, 8, testConfig(), table)
	if res.ShippingRaw != 20000 {
		t.Fatalf("override must bypass the formula and the multiplier, got %f", res.ShippingRaw)
	}
	if res.ShippingFinal != 20000 {
		t.Fatalf("expected final 20000, got %f", res.ShippingFinal)
	}
}

func TestCalculateFloorAppliesToOverride(t *testing.T) {
	table := NewTable(nil, &Zone{Code: "Z4", PriceOverride: float(1000)})
	res := Calculate(nil, 500, testConfig(), table)
	if res.ShippingRaw != 1000 {
		t.Fatalf("expected raw 1000, got %f", res.ShippingRaw)
	}
	if res.ShippingFinal != 15000 {
		t.Fatalf("floor must apply to overrides, got %f", res.ShippingFinal)
	}
}

func TestCalculateNilMultiplierDefaultsToOne(t *testing.T) {
	table := NewTable([]Tier{{Zone: Zone{Code: "Z1"}, MaxKM: 100}}, nil)
	res := Calculate(nil, 50, testConfig(), table)
	// (10000 + 0 + 5000) * 1.0
	if res.ShippingRaw != 15000 {
		t.Fatalf("expected raw 15000 with default multiplier, got %f", res.ShippingRaw)
	}
}

func TestCalculatePropagatesNegativeConfig(t *testing.T) {
	cfg := testConfig()
	cfg.PricePerKG = -5000
	cfg.MinShipping = -1
	items := []Item{{WeightG: 1000, Quantity: 1}}
	res := Calculate(items, 0, cfg, testTable())
	// Misconfiguration is not clamped: the negative rate flows through.
	if res.WeightCost != -5000 {
		t.Fatalf("expected weight cost -5000, got %f", res.WeightCost)
	}
	if res.ShippingRaw != 5000 {
		t.Fatalf("expected raw 5000, got %f", res.ShippingRaw)
	}
}
