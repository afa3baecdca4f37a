package shipping

import (
	"errors"
	"sort"
)

// ErrMultipleCatchAll is returned when a stored zone table contains more
// than one unbounded entry.
var ErrMultipleCatchAll = errors.New("zone table has more than one catch-all entry")

// Zone holds the pricing attributes of a tier. A nil Multiplier means 1.0.
// A non-nil PriceOverride replaces the fee formula entirely for that tier.
type Zone struct {
	Code          string
	Label         string
	Multiplier    *float64
	PriceOverride *float64
}

// Tier is a zone bounded by an inclusive maximum distance in kilometres.
type Tier struct {
	Zone
	MaxKM float64
}

// Table is an ordered zone table: bounded tiers sorted ascending by MaxKM
// plus an optional catch-all matching any remaining distance. Keeping the
// catch-all as a separate field makes "at most one unbounded tier" a
// construction invariant rather than a null convention.
type Table struct {
	Tiers    []Tier
	CatchAll *Zone
}

// NewTable builds a table from bounded tiers and an optional catch-all.
// The tier slice is copied and sorted; the caller's slice is not mutated.
func NewTable(tiers []Tier, catchAll *Zone) Table {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MaxKM < sorted[j].MaxKM })
	return Table{Tiers: sorted, CatchAll: catchAll}
}

// Resolve maps a distance to exactly one zone. Bounded tiers are scanned in
// ascending order and the boundary is inclusive: a distance equal to a
// tier's MaxKM belongs to that tier. Distances beyond every bounded tier
// fall to the catch-all. A table without a catch-all resolves such
// distances to the last bounded tier so that resolution is total even for
// malformed configuration.
func (t Table) Resolve(distanceKm float64) Zone {
	for _, tier := range t.Tiers {
		if distanceKm <= tier.MaxKM {
			return tier.Zone
		}
	}
	if t.CatchAll != nil {
		return *t.CatchAll
	}
	if len(t.Tiers) > 0 {
		return t.Tiers[len(t.Tiers)-1].Zone
	}
	return Zone{}
}

// ZoneRow is the stored representation of a zone where a null MaxKM marks
// the catch-all tier.
type ZoneRow struct {
	Zone          string   `json:"zone"`
	Label         string   `json:"label"`
	MaxKM         *float64 `json:"max_km"`
	Multiplier    *float64 `json:"multiplier"`
	PriceOverride *float64 `json:"price_override"`
}

// ParseRows converts stored zone rows into a Table. At most one row may be
// unbounded; a second catch-all is a configuration error.
func ParseRows(rows []ZoneRow) (Table, error) {
	tiers := make([]Tier, 0, len(rows))
	var catchAll *Zone
	for _, row := range rows {
		zone := Zone{
			Code:          row.Zone,
			Label:         row.Label,
			Multiplier:    row.Multiplier,
			PriceOverride: row.PriceOverride,
		}
		if row.MaxKM == nil {
			if catchAll != nil {
				return Table{}, ErrMultipleCatchAll
			}
			z := zone
			catchAll = &z
			continue
		}
		tiers = append(tiers, Tier{Zone: zone, MaxKM: *row.MaxKM})
	}
	return NewTable(tiers, catchAll), nil
}

// Rows converts the table back into the stored row shape, catch-all last.
func (t Table) Rows() []ZoneRow {
	rows := make([]ZoneRow, 0, len(t.Tiers)+1)
	for _, tier := range t.Tiers {
		maxKm := tier.MaxKM
		rows = append(rows, ZoneRow{
			Zone:          tier.Code,
			Label:         tier.Label,
			MaxKM:         &maxKm,
			Multiplier:    tier.Multiplier,
			PriceOverride: tier.PriceOverride,
		})
	}
	if t.CatchAll != nil {
		rows = append(rows, ZoneRow{
			Zone:          t.CatchAll.Code,
			Label:         t.CatchAll.Label,
			Multiplier:    t.CatchAll.Multiplier,
			PriceOverride: t.CatchAll.PriceOverride,
		})
	}
	return rows
}
