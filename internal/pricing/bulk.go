package pricing

import (
	"fmt"
	"math"
)

// Quote is the result of pricing a bulk order. Money and pound values are
// rounded to cents; everything behind them is computed at full precision.
type Quote struct {
	BasePrice           float64 `json:"base_price" msgpack:"base_price"`
	Quantity            float64 `json:"quantity" msgpack:"quantity"`
	Unit                Unit    `json:"unit" msgpack:"unit"`
	PoundsEquivalent    float64 `json:"pounds_equivalent" msgpack:"pounds_equivalent"`
	TierLabel           string  `json:"tier_label" msgpack:"tier_label"`
	DiscountPercent     int     `json:"discount_percent" msgpack:"discount_percent"`
	DiscountedUnitPrice float64 `json:"discounted_unit_price" msgpack:"discounted_unit_price"`
	TotalPrice          float64 `json:"total_price" msgpack:"total_price"`
	TotalSavings        float64 `json:"total_savings" msgpack:"total_savings"`
}

// PriceBulk quotes quantity units at basePrice per unit. The discount tier is
// chosen from the pound equivalent of the order, but totals are multiplied by
// the quantity as given, in its own unit.
func PriceBulk(basePrice, quantity float64, unit Unit) (Quote, error) {
	if !positiveFinite(basePrice) {
		return Quote{}, fmt.Errorf("%w: base price must be positive, got %v", ErrInvalidInput, basePrice)
	}
	if !positiveFinite(quantity) {
		return Quote{}, fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidInput, quantity)
	}
	pounds, err := Convert(quantity, unit, Pound)
	if err != nil {
		return Quote{}, err
	}
	tier, err := ResolveTier(pounds)
	if err != nil {
		return Quote{}, err
	}

	discounted := basePrice * (1 - float64(tier.DiscountPercent)/100)
	if math.IsInf(basePrice*quantity, 0) {
		return Quote{}, fmt.Errorf("%w: total for %v %s at %v is out of range", ErrInvalidInput, quantity, unit, basePrice)
	}
	return Quote{
		BasePrice:           Round2(basePrice),
		Quantity:            quantity,
		Unit:                unit,
		PoundsEquivalent:    Round2(pounds),
		TierLabel:           tier.Label,
		DiscountPercent:     tier.DiscountPercent,
		DiscountedUnitPrice: Round2(discounted),
		TotalPrice:          Round2(discounted * quantity),
		TotalSavings:        Round2((basePrice - discounted) * quantity),
	}, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
