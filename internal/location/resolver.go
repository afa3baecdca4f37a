package location

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/backend-butik/internal/cache"
)

// ErrNotFound is returned when no coordinates are stored for the requested
// administrative area. Checkout treats this as a hard failure before any
// cost calculation runs.
var ErrNotFound = errors.New("location not found")

// Query identifies an Indonesian administrative area down to village level.
// Village may be empty; the remaining fields are required.
type Query struct {
	Province    string
	District    string
	SubDistrict string
	Village     string
}

// Point is a resolved coordinate pair in decimal degrees.
type Point struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Resolver maps administrative areas to approximate coordinates from the
// locations table, with a redis cache in front.
type Resolver struct {
	DB    querier
	Cache *cache.JSON
}

// Resolve returns the stored coordinates for the query. When no village
// match exists the sub-district centroid row (empty village) is used.
func (r *Resolver) Resolve(ctx context.Context, q Query) (Point, error) {
	if r == nil || r.DB == nil {
		return Point{}, errors.New("location resolver not configured")
	}
	key := cacheKey(q)
	var point Point
	if hit, err := r.Cache.Get(ctx, key, &point); err == nil && hit {
		return point, nil
	}

	err := r.DB.QueryRow(ctx, `
		SELECT lat, long
		FROM locations
		WHERE lower(province) = lower($1)
		  AND lower(district) = lower($2)
		  AND lower(sub_district) = lower($3)
		  AND lower(village) = lower($4)
		LIMIT 1`,
		strings.TrimSpace(q.Province),
		strings.TrimSpace(q.District),
		strings.TrimSpace(q.SubDistrict),
		strings.TrimSpace(q.Village),
	).Scan(&point.Lat, &point.Long)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Point{}, ErrNotFound
		}
		return Point{}, err
	}

	_ = r.Cache.Set(ctx, key, point)
	return point, nil
}

func cacheKey(q Query) string {
	parts := []string{"loc", q.Province, q.District, q.SubDistrict, q.Village}
	return strings.ToLower(strings.Join(parts, ":"))
}
