package pricing

import "testing"

func TestTotalScenario(t *testing.T) {
	total := Total(TotalInputs{
		BasePrice: 100000,
		Shipping:  15000,
		Tax:       Adjustment{Value: 10, Type: Percentage},
		Promo:     Adjustment{Value: 5000, Type: Fixed},
		Member:    Adjustment{Value: 0, Type: Fixed},
	})
	// 100000 + 10000 - 5000 - 0 + 15000
	if total != 120000 {
		t.Fatalf("expected 120000, got %f", total)
	}
}

func TestTotalAdjustmentsDoNotCompound(t *testing.T) {
	// Both discounts are percentages of the base, not of the taxed amount.
	total := Total(TotalInputs{
		BasePrice: 200000,
		Tax:       Adjustment{Value: 10, Type: Percentage},
		Promo:     Adjustment{Value: 10, Type: Percentage},
		Member:    Adjustment{Value: 5, Type: Percentage},
	})
	// 200000 + 20000 - 20000 - 10000 + 0
	if total != 190000 {
		t.Fatalf("expected 190000, got %f", total)
	}
}

func TestTotalShippingAddedUnmodified(t *testing.T) {
	base := Total(TotalInputs{BasePrice: 50000})
	withShipping := Total(TotalInputs{BasePrice: 50000, Shipping: 17500})
	if withShipping-base != 17500 {
		t.Fatalf("shipping must pass through unmodified, delta %f", withShipping-base)
	}
}

func TestDiscountedPrice(t *testing.T) {
	if got := DiscountedPrice(100000, 25); got != 75000 {
		t.Fatalf("expected 75000, got %f", got)
	}
	if got := DiscountedPrice(99.99, 10); got != 89.99 {
		t.Fatalf("expected 89.99, got %f", got)
	}
}

func TestDiscountedPriceClamp(t *testing.T) {
	if got := DiscountedPrice(100000, 150); got != 0 {
		t.Fatalf("discount above 100 must clamp to 100, got %f", got)
	}
	if got := DiscountedPrice(100000, -20); got != 100000 {
		t.Fatalf("negative discount must clamp to 0, got %f", got)
	}
}
