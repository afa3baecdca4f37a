package sizes

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/backend-butik/internal/cache"
)

// ErrNotFound is returned for an unknown garment size code. Checkout treats
// this as a hard failure before any cost calculation runs.
var ErrNotFound = errors.New("size not found")

// Dimensions describes the packed weight and box dimensions of one garment
// size.
type Dimensions struct {
	WeightG  float64 `json:"weight_g"`
	LengthCM float64 `json:"length_cm"`
	WidthCM  float64 `json:"width_cm"`
	HeightCM float64 `json:"height_cm"`
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Resolver maps size codes (S, M, L, XL, ...) to shipping dimensions from
// the product_sizes table, with a redis cache in front.
type Resolver struct {
	DB    querier
	Cache *cache.JSON
}

// Resolve returns the dimensions configured for the size code.
func (r *Resolver) Resolve(ctx context.Context, code string) (Dimensions, error) {
	if r == nil || r.DB == nil {
		return Dimensions{}, errors.New("size resolver not configured")
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return Dimensions{}, ErrNotFound
	}
	key := "size:" + normalized
	var dims Dimensions
	if hit, err := r.Cache.Get(ctx, key, &dims); err == nil && hit {
		return dims, nil
	}

	err := r.DB.QueryRow(ctx, `
		SELECT weight_g, length_cm, width_cm, height_cm
		FROM product_sizes
		WHERE upper(code) = $1
		LIMIT 1`, normalized,
	).Scan(&dims.WeightG, &dims.LengthCM, &dims.WidthCM, &dims.HeightCM)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dimensions{}, ErrNotFound
		}
		return Dimensions{}, err
	}

	_ = r.Cache.Set(ctx, key, dims)
	return dims, nil
}
