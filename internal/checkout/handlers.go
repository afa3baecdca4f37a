package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-butik/internal/common"
	"github.com/noah-isme/backend-butik/internal/location"
	"github.com/noah-isme/backend-butik/internal/pricing"
	"github.com/noah-isme/backend-butik/internal/shipping"
	"github.com/noah-isme/backend-butik/internal/sizes"
)

// Handler exposes the public estimate endpoint.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type destinationPayload struct {
	Province    string `json:"province" validate:"required"`
	District    string `json:"district" validate:"required"`
	SubDistrict string `json:"subDistrict" validate:"required"`
	Village     string `json:"village"`
}

type itemPayload struct {
	Size string `json:"size" validate:"required"`
	Qty  int    `json:"qty" validate:"min=1"`
}

type adjustmentPayload struct {
	Value float64 `json:"value" validate:"gte=0"`
	Type  string  `json:"type" validate:"omitempty,oneof=PERCENTAGE FIXED"`
}

type estimateRequest struct {
	Destination destinationPayload `json:"destination" validate:"required"`
	Items       []itemPayload      `json:"items" validate:"required,min=1,dive"`
	BasePrice   float64            `json:"basePrice" validate:"gte=0"`
	Tax         adjustmentPayload  `json:"tax"`
	Promo       adjustmentPayload  `json:"promo"`
	Member      adjustmentPayload  `json:"member"`
}

// Estimate prices a prospective checkout and returns the calculation trace.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "estimate service not configured", nil)
		return
	}
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid estimate request", validationDetails(err))
			return
		}
	}

	in := Input{
		Destination: location.Query{
			Province:    req.Destination.Province,
			District:    req.Destination.District,
			SubDistrict: req.Destination.SubDistrict,
			Village:     req.Destination.Village,
		},
		BasePrice: req.BasePrice,
		Tax:       req.Tax.toAdjustment(),
		Promo:     req.Promo.toAdjustment(),
		Member:    req.Member.toAdjustment(),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, ItemInput{Size: it.Size, Qty: it.Qty})
	}

	est, err := h.Svc.Estimate(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, location.ErrNotFound):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "destination not found", nil)
		case errors.Is(err, sizes.ErrNotFound):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "size not found", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to estimate checkout", nil)
		}
		return
	}

	common.JSON(w, http.StatusOK, map[string]any{"data": serialiseEstimate(est)})
}

func (p adjustmentPayload) toAdjustment() pricing.Adjustment {
	kind := pricing.DiscountType(p.Type)
	if kind != pricing.Percentage {
		kind = pricing.Fixed
	}
	return pricing.Adjustment{Value: p.Value, Type: kind}
}

func serialiseEstimate(est Estimate) map[string]any {
	return map[string]any{
		"destination": est.Destination,
		"shipping":    serialiseResult(est.Shipping),
		"total":       est.Total,
		"sources": map[string]string{
			"config": est.ConfigSource,
			"zones":  est.ZoneSource,
		},
	}
}

func serialiseResult(res shipping.Result) map[string]any {
	return map[string]any{
		"totalWeightKg":   res.TotalWeightKG,
		"roundedWeightKg": res.RoundedWeightKG,
		"distanceKm":      res.DistanceKM,
		"zone": map[string]any{
			"zone":          res.Zone.Code,
			"label":         res.Zone.Label,
			"multiplier":    res.Zone.Multiplier,
			"priceOverride": res.Zone.PriceOverride,
		},
		"weightCost":    res.WeightCost,
		"distanceCost":  res.DistanceCost,
		"shippingRaw":   res.ShippingRaw,
		"shippingFinal": res.ShippingFinal,
	}
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace())
	}
	return map[string]any{"fields": fields}
}
