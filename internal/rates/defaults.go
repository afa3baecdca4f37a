package rates

import "github.com/noah-isme/backend-butik/internal/shipping"

// Built-in shipping parameters used whenever no active configuration is
// stored. Defaulting happens here, once, so the calculation functions stay
// free of fallback logic. The origin is the Jakarta warehouse.
func DefaultConfig() shipping.Config {
	return shipping.Config{
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

// DefaultZones returns the built-in four-tier zone table.
func DefaultZones() shipping.Table {
	return shipping.NewTable([]shipping.Tier{
		{Zone: shipping.Zone{Code: "Z1", Label: "Dalam kota", Multiplier: ptr(1.0)}, MaxKM: 10},
		{Zone: shipping.Zone{Code: "Z2", Label: "Sekitar kota", Multiplier: ptr(1.2)}, MaxKM: 30},
		{Zone: shipping.Zone{Code: "Z3", Label: "Antar kota", Multiplier: ptr(1.5)}, MaxKM: 100},
	}, &shipping.Zone{Code: "Z4", Label: "Luar pulau", Multiplier: ptr(2.0)})
}

func ptr(v float64) *float64 { return &v }
