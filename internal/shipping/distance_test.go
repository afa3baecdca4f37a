package shipping

import (
	"math"
	"testing"
)

const earthRadiusKm = 6371.0

func TestDistanceIdentity(t *testing.T) {
	d := Distance(-6.2088, 106.8456, -6.2088, 106.8456, earthRadiusKm)
	if d != 0 {
		t.Fatalf("expected zero distance for identical points, got %f", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{-6.2088, 106.8456, -6.9147, 107.6098},  // Jakarta -> Bandung
		{-6.2088, 106.8456, -7.7956, 110.3695},  // Jakarta -> Yogyakarta
		{3.5952, 98.6722, -8.6705, 115.2126},    // Medan -> Denpasar
		{-0.0263, 109.3425, -5.1477, 119.4327},  // Pontianak -> Makassar
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3], earthRadiusKm)
		ba := Distance(p[2], p[3], p[0], p[1], earthRadiusKm)
		if ab != ba {
			t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
		}
		if ab < 0 || math.IsNaN(ab) || math.IsInf(ab, 0) {
			t.Fatalf("distance not finite and non-negative: %f", ab)
		}
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Jakarta to Bandung is roughly 120 km as the crow flies.
	d := Distance(-6.2088, 106.8456, -6.9147, 107.6098, earthRadiusKm)
	if d < 110 || d > 130 {
		t.Fatalf("Jakarta-Bandung distance out of expected range: %f", d)
	}
}

func TestDistanceScalesWithRadius(t *testing.T) {
	base := Distance(-6.2088, 106.8456, -6.9147, 107.6098, earthRadiusKm)
	doubled := Distance(-6.2088, 106.8456, -6.9147, 107.6098, 2*earthRadiusKm)
	if math.Abs(doubled-2*base) > 1e-9 {
		t.Fatalf("distance should scale linearly with radius: %f vs %f", doubled, 2*base)
	}
}
