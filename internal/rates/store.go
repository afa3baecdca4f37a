package rates

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-butik/internal/cache"
	"github.com/noah-isme/backend-butik/internal/obs"
	"github.com/noah-isme/backend-butik/internal/shipping"
)

// SnapshotCacheKey is the redis key holding the serialized rates snapshot.
const SnapshotCacheKey = "rates:snapshot"

// Source values describing where a snapshot part came from.
const (
	SourceDB      = "db"
	SourceDefault = "default"
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Snapshot is a point-in-time view of the shipping parameters handed to the
// pure calculation functions. Config and zone table fall back independently.
type Snapshot struct {
	Config       shipping.Config
	Zones        shipping.Table
	ConfigSource string
	ZoneSource   string
}

// Store loads the active shipping configuration and zone table, caching the
// combined snapshot in redis. Absent or inactive configuration falls back to
// the built-in defaults; a request is never failed for missing config.
type Store struct {
	DB    querier
	Cache *cache.JSON
	Log   zerolog.Logger
}

type configPayload struct {
	VolumeDivider float64 `json:"volume_divider"`
	PricePerKG    float64 `json:"price_per_kg"`
	PricePerKM    float64 `json:"price_per_km"`
	BasePrice     float64 `json:"base_price"`
	MinShipping   float64 `json:"min_shipping"`
	OriginLat     float64 `json:"origin_lat"`
	OriginLong    float64 `json:"origin_long"`
	EarthRadiusKM float64 `json:"earth_radius_km"`
}

type snapshotPayload struct {
	Config       configPayload      `json:"config"`
	Zones        []shipping.ZoneRow `json:"zones"`
	ConfigSource string             `json:"configSource"`
	ZoneSource   string             `json:"zoneSource"`
}

// Snapshot returns the current rates. It is total: any load or parse
// failure degrades to the defaults with a logged warning rather than an
// error, since a missing tariff must not block checkout.
func (s *Store) Snapshot(ctx context.Context) Snapshot {
	var payload snapshotPayload
	if hit, err := s.Cache.Get(ctx, SnapshotCacheKey, &payload); err == nil && hit {
		if snap, ok := s.fromPayload(payload); ok {
			return snap
		}
	} else if err != nil {
		s.Log.Warn().Err(err).Msg("rates cache read failed")
	}

	snap := s.load(ctx)
	if err := s.Cache.Set(ctx, SnapshotCacheKey, s.toPayload(snap)); err != nil {
		s.Log.Warn().Err(err).Msg("rates cache write failed")
	}
	return snap
}

// Invalidate drops the cached snapshot so the next read hits the database.
func (s *Store) Invalidate(ctx context.Context) error {
	return s.Cache.Delete(ctx, SnapshotCacheKey)
}

func (s *Store) load(ctx context.Context) Snapshot {
	snap := Snapshot{
		Config:       DefaultConfig(),
		Zones:        DefaultZones(),
		ConfigSource: SourceDefault,
		ZoneSource:   SourceDefault,
	}
	if s.DB == nil {
		return snap
	}

	var cfg configPayload
	err := s.DB.QueryRow(ctx, `
		SELECT volume_divider, price_per_kg, price_per_km, base_price,
		       min_shipping, origin_lat, origin_long, earth_radius_km
		FROM shipping_configs
		WHERE active
		ORDER BY updated_at DESC
		LIMIT 1`).Scan(
		&cfg.VolumeDivider, &cfg.PricePerKG, &cfg.PricePerKM, &cfg.BasePrice,
		&cfg.MinShipping, &cfg.OriginLat, &cfg.OriginLong, &cfg.EarthRadiusKM,
	)
	switch {
	case err == nil:
		snap.Config = cfg.toConfig()
		snap.ConfigSource = SourceDB
	case errors.Is(err, pgx.ErrNoRows):
		s.Log.Debug().Msg("no active shipping config, using defaults")
		s.countFallback("config")
	default:
		s.Log.Warn().Err(err).Msg("load shipping config failed, using defaults")
		s.countFallback("config")
	}

	rows, err := s.loadZones(ctx)
	switch {
	case err != nil:
		s.Log.Warn().Err(err).Msg("load shipping zones failed, using defaults")
		s.countFallback("zones")
	case len(rows) == 0:
		s.Log.Debug().Msg("no active shipping zones, using defaults")
		s.countFallback("zones")
	default:
		table, parseErr := shipping.ParseRows(rows)
		if parseErr != nil {
			s.Log.Warn().Err(parseErr).Msg("stored zone table invalid, using defaults")
			s.countFallback("zones")
			break
		}
		snap.Zones = table
		snap.ZoneSource = SourceDB
	}

	for _, warning := range Validate(snap.Config, snap.Zones) {
		s.Log.Warn().Str("warning", warning).Msg("shipping rates validation")
	}
	return snap
}

func (s *Store) loadZones(ctx context.Context) ([]shipping.ZoneRow, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT zone, label, max_km, multiplier, price_override
		FROM shipping_zones
		WHERE active
		ORDER BY max_km ASC NULLS LAST`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []shipping.ZoneRow
	for rows.Next() {
		var row shipping.ZoneRow
		if err := rows.Scan(&row.Zone, &row.Label, &row.MaxKM, &row.Multiplier, &row.PriceOverride); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) countFallback(part string) {
	if obs.RatesFallbackTotal != nil {
		obs.RatesFallbackTotal.WithLabelValues(part).Inc()
	}
}

func (s *Store) fromPayload(p snapshotPayload) (Snapshot, bool) {
	table, err := shipping.ParseRows(p.Zones)
	if err != nil || len(p.Zones) == 0 {
		return Snapshot{}, false
	}
	return Snapshot{
		Config:       p.Config.toConfig(),
		Zones:        table,
		ConfigSource: p.ConfigSource,
		ZoneSource:   p.ZoneSource,
	}, true
}

func (s *Store) toPayload(snap Snapshot) snapshotPayload {
	return snapshotPayload{
		Config: configPayload{
			VolumeDivider: snap.Config.VolumeDivider,
			PricePerKG:    snap.Config.PricePerKG,
			PricePerKM:    snap.Config.PricePerKM,
			BasePrice:     snap.Config.BasePrice,
			MinShipping:   snap.Config.MinShipping,
			OriginLat:     snap.Config.OriginLat,
			OriginLong:    snap.Config.OriginLong,
			EarthRadiusKM: snap.Config.EarthRadiusKM,
		},
		Zones:        snap.Zones.Rows(),
		ConfigSource: snap.ConfigSource,
		ZoneSource:   snap.ZoneSource,
	}
}

func (p configPayload) toConfig() shipping.Config {
	return shipping.Config{
		VolumeDivider: p.VolumeDivider,
		PricePerKG:    p.PricePerKG,
		PricePerKM:    p.PricePerKM,
		BasePrice:     p.BasePrice,
		MinShipping:   p.MinShipping,
		OriginLat:     p.OriginLat,
		OriginLong:    p.OriginLong,
		EarthRadiusKM: p.EarthRadiusKM,
	}
}

// Validate reports configuration problems worth surfacing to operators. The
// calculation functions accept these values regardless; a warning here is
// the only place misconfiguration is flagged before it shows up in a fee.
func Validate(cfg shipping.Config, zones shipping.Table) []string {
	var warnings []string
	if !(cfg.VolumeDivider > 0) {
		warnings = append(warnings, "volume_divider must be strictly positive")
	}
	if !(cfg.EarthRadiusKM > 0) {
		warnings = append(warnings, "earth_radius_km must be strictly positive")
	}
	for _, v := range []float64{cfg.PricePerKG, cfg.PricePerKM, cfg.BasePrice, cfg.MinShipping, cfg.OriginLat, cfg.OriginLong} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			warnings = append(warnings, "config contains a non-finite value")
			break
		}
	}
	if len(zones.Tiers) == 0 && zones.CatchAll == nil {
		warnings = append(warnings, "zone table is empty")
	}
	if zones.CatchAll == nil {
		warnings = append(warnings, "zone table has no catch-all tier; distances beyond the last bound fall back to it")
	}
	return warnings
}
