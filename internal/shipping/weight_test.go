package shipping

import (
	"math"
	"testing"
)

func TestTotalWeightActualDominates(t *testing.T) {
	items := []Item{{WeightG: 500, LengthCM: 10, WidthCM: 10, HeightCM: 10, Quantity: 1}}
	total, rounded := TotalWeight(items, 6000)
	// volumetric = 1000/6000 ≈ 0.1667 kg, actual = 0.5 kg, actual wins.
	if total != 0.5 {
		t.Fatalf("expected chargeable weight 0.5, got %f", total)
	}
	if rounded != 1 {
		t.Fatalf("expected rounded weight 1, got %f", rounded)
	}
}

func TestTotalWeightVolumetricDominates(t *testing.T) {
	items := []Item{{WeightG: 200, LengthCM: 40, WidthCM: 30, HeightCM: 20, Quantity: 2}}
	total, _ := TotalWeight(items, 6000)
	// volumetric = 24000/6000 = 4 kg per unit, actual 0.2 kg.
	if total != 8 {
		t.Fatalf("expected chargeable weight 8, got %f", total)
	}
}

func TestTotalWeightZeroItemsValid(t *testing.T) {
	items := []Item{
		{WeightG: 0, LengthCM: 0, WidthCM: 0, HeightCM: 0, Quantity: 3},
		{WeightG: 1000, Quantity: 1},
	}
	total, rounded := TotalWeight(items, 6000)
	if total != 1 {
		t.Fatalf("zero-dimension items must contribute 0, got total %f", total)
	}
	if rounded != 1 {
		t.Fatalf("expected rounded weight 1, got %f", rounded)
	}
}

func TestTotalWeightEmpty(t *testing.T) {
	total, rounded := TotalWeight(nil, 6000)
	if total != 0 || rounded != 0 {
		t.Fatalf("expected zero weights, got %f / %f", total, rounded)
	}
}

func TestTotalWeightRoundsUp(t *testing.T) {
	items := []Item{{WeightG: 1200, Quantity: 1}}
	total, rounded := TotalWeight(items, 6000)
	if total != 1.2 {
		t.Fatalf("expected total 1.2, got %f", total)
	}
	if rounded != math.Ceil(total) || rounded != 2 {
		t.Fatalf("expected ceiling 2, got %f", rounded)
	}
}
