package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/backend-butik/internal/location"
	"github.com/noah-isme/backend-butik/internal/obs"
	"github.com/noah-isme/backend-butik/internal/pricing"
	"github.com/noah-isme/backend-butik/internal/rates"
	"github.com/noah-isme/backend-butik/internal/shipping"
	"github.com/noah-isme/backend-butik/internal/sizes"
)

// LocationResolver supplies destination coordinates.
type LocationResolver interface {
	Resolve(ctx context.Context, q location.Query) (location.Point, error)
}

// SizeResolver supplies per-size shipping dimensions.
type SizeResolver interface {
	Resolve(ctx context.Context, code string) (sizes.Dimensions, error)
}

// RateSource supplies the current shipping configuration snapshot.
type RateSource interface {
	Snapshot(ctx context.Context) rates.Snapshot
}

// ItemInput is one cart line of the estimate request.
type ItemInput struct {
	Size string
	Qty  int
}

// Input carries everything needed to price one checkout.
type Input struct {
	Destination location.Query
	Items       []ItemInput
	BasePrice   float64
	Tax         pricing.Adjustment
	Promo       pricing.Adjustment
	Member      pricing.Adjustment
}

// Estimate is the full pricing outcome, including the calculation trace so
// the storefront can explain the fee line by line.
type Estimate struct {
	Destination  location.Point
	Shipping     shipping.Result
	Total        float64
	ConfigSource string
	ZoneSource   string
}

// Service composes the external collaborators with the pure calculation
// engine. All state is read per call; concurrent estimates need no
// coordination.
type Service struct {
	Locations LocationResolver
	Sizes     SizeResolver
	Rates     RateSource
}

// Estimate resolves coordinates and dimensions, then runs the shipping and
// total-price calculations. Unresolvable destinations or size codes abort
// before any cost calculation: the engine only ever sees resolved inputs.
func (s *Service) Estimate(ctx context.Context, in Input) (Estimate, error) {
	start := time.Now()

	dest, err := s.Locations.Resolve(ctx, in.Destination)
	if err != nil {
		s.observe("destination_error", start)
		return Estimate{}, fmt.Errorf("resolve destination: %w", err)
	}

	items := make([]shipping.Item, 0, len(in.Items))
	dims := make(map[string]sizes.Dimensions, len(in.Items))
	for _, it := range in.Items {
		d, ok := dims[it.Size]
		if !ok {
			d, err = s.Sizes.Resolve(ctx, it.Size)
			if err != nil {
				s.observe("size_error", start)
				return Estimate{}, fmt.Errorf("resolve size %q: %w", it.Size, err)
			}
			dims[it.Size] = d
		}
		items = append(items, shipping.Item{
			WeightG:  d.WeightG,
			LengthCM: d.LengthCM,
			WidthCM:  d.WidthCM,
			HeightCM: d.HeightCM,
			Quantity: it.Qty,
		})
	}

	snap := s.Rates.Snapshot(ctx)
	distance := shipping.Distance(
		snap.Config.OriginLat, snap.Config.OriginLong,
		dest.Lat, dest.Long,
		snap.Config.EarthRadiusKM,
	)
	result := shipping.Calculate(items, distance, snap.Config, snap.Zones)
	total := pricing.Total(pricing.TotalInputs{
		BasePrice: in.BasePrice,
		Shipping:  result.ShippingFinal,
		Tax:       in.Tax,
		Promo:     in.Promo,
		Member:    in.Member,
	})

	if obs.ZoneResolutionTotal != nil {
		obs.ZoneResolutionTotal.WithLabelValues(result.Zone.Code).Inc()
	}
	s.observe("ok", start)

	return Estimate{
		Destination:  dest,
		Shipping:     result,
		Total:        total,
		ConfigSource: snap.ConfigSource,
		ZoneSource:   snap.ZoneSource,
	}, nil
}

func (s *Service) observe(result string, start time.Time) {
	if obs.EstimateTotal != nil {
		obs.EstimateTotal.WithLabelValues(result).Inc()
	}
	if obs.EstimateDuration != nil {
		obs.EstimateDuration.Observe(obs.DurationMillis(time.Since(start)))
	}
}
