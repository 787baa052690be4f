package pricing

import (
	"fmt"
	"math"
)

// Tier is a volume discount bracket.
type Tier struct {
	MinPounds       float64 `json:"min_pounds" msgpack:"min_pounds"`
	DiscountPercent int     `json:"discount_percent" msgpack:"discount_percent"`
	Label           string  `json:"label" msgpack:"label"`
}

// volumeTiers must stay sorted by MinPounds, highest first, and end at 0.
var volumeTiers = [...]Tier{
	{MinPounds: 100, DiscountPercent: 15, Label: "Master 2 (100lbs+)"},
	{MinPounds: 50, DiscountPercent: 10, Label: "Master (50lbs+)"},
	{MinPounds: 25, DiscountPercent: 5, Label: "Distro (25lbs+)"},
	{MinPounds: 0, DiscountPercent: 0, Label: "Standard Pricing"},
}

// Tiers returns a copy of the discount table, highest threshold first.
func Tiers() []Tier {
	out := make([]Tier, len(volumeTiers))
	copy(out, volumeTiers[:])
	return out
}

// ResolveTier returns the first tier whose threshold pounds meets.
func ResolveTier(pounds float64) (Tier, error) {
	if math.IsNaN(pounds) || math.IsInf(pounds, 0) || pounds < 0 {
		return Tier{}, fmt.Errorf("%w: %v lbs", ErrInvalidQuantity, pounds)
	}
	for _, t := range volumeTiers {
		if pounds >= t.MinPounds {
			return t, nil
		}
	}
	// Unreachable while the table ends at 0.
	return volumeTiers[len(volumeTiers)-1], nil
}
