package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dileep-u-k/inventory-agent/internal/pricing"
)

// SortKey selects the secondary ordering of a menu, after tier.
type SortKey string

const (
	SortByPrice SortKey = "price"
	SortByTHCa  SortKey = "thca"
)

// ParseSortKey defaults to price for an empty string.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByPrice:
		return SortByPrice, nil
	case SortByTHCa:
		return SortByTHCa, nil
	}
	return "", fmt.Errorf("unknown sort key %q (use price or thca)", s)
}

// FilterByTier keeps products of the given tier. An empty tier keeps all.
func FilterByTier(products []Product, tier QualityTier) []Product {
	if tier == "" {
		return products
	}
	var out []Product
	for _, p := range products {
		if p.Tier == tier {
			out = append(out, p)
		}
	}
	return out
}

// SortForMenu orders products best tier first and, inside a tier, by the
// sort key descending. Name breaks ties. The input slice is not modified.
func SortForMenu(products []Product, by SortKey) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Tier.Rank() != b.Tier.Rank() {
			return a.Tier.Rank() < b.Tier.Rank()
		}
		var ka, kb float64
		if by == SortByTHCa {
			ka, kb = a.THCa, b.THCa
		} else {
			ka, kb = a.PricePerLb, b.PricePerLb
		}
		if ka != kb {
			return ka > kb
		}
		return a.Name < b.Name
	})
	return out
}

// RenderMenu formats a price menu grouped by tier.
func RenderMenu(products []Product, by SortKey) (string, error) {
	sorted := SortForMenu(products, by)
	if len(sorted) == 0 {
		return "No products available.", nil
	}
	var b strings.Builder
	var current QualityTier
	for _, p := range sorted {
		if p.Tier != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = p.Tier
			fmt.Fprintf(&b, "== %s ==\n", strings.ToUpper(string(p.Tier)))
		}
		perOz, err := pricing.PricePer(p.PricePerLb, pricing.Pound, pricing.Ounce)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%-18s %-7s THCa %5.1f%%  $%.2f/lb  $%.2f/oz  (%.1f lbs in stock)\n",
			p.Name, p.Strain, p.THCa, p.PricePerLb, pricing.Round2(perOz), p.WeightLbs)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// TierStat aggregates the products of one tier.
type TierStat struct {
	Tier            QualityTier `json:"tier"`
	Count           int         `json:"count"`
	TotalLbs        float64     `json:"total_lbs"`
	MinPricePerLb   float64     `json:"min_price_per_lb"`
	MaxPricePerLb   float64     `json:"max_price_per_lb"`
	AvgPricePerLb   float64     `json:"avg_price_per_lb"`
	AvgPricePerGram float64     `json:"avg_price_per_gram"`
	AvgTHCa         float64     `json:"avg_thca"`
}

// TierStats computes per-tier price and potency statistics, best tier first.
// Tiers without products are omitted.
func TierStats(products []Product) ([]TierStat, error) {
	byTier := make(map[QualityTier][]Product)
	for _, p := range products {
		byTier[p.Tier] = append(byTier[p.Tier], p)
	}

	var stats []TierStat
	for _, tier := range orderedTiers(byTier) {
		ps := byTier[tier]
		s := TierStat{Tier: tier, Count: len(ps), MinPricePerLb: ps[0].PricePerLb, MaxPricePerLb: ps[0].PricePerLb}
		var priceSum, thcaSum float64
		for _, p := range ps {
			priceSum += p.PricePerLb
			thcaSum += p.THCa
			s.TotalLbs += p.WeightLbs
			if p.PricePerLb < s.MinPricePerLb {
				s.MinPricePerLb = p.PricePerLb
			}
			if p.PricePerLb > s.MaxPricePerLb {
				s.MaxPricePerLb = p.PricePerLb
			}
		}
		avg := priceSum / float64(len(ps))
		perGram, err := pricing.PricePer(avg, pricing.Pound, pricing.Gram)
		if err != nil {
			return nil, err
		}
		s.AvgPricePerLb = pricing.Round2(avg)
		s.AvgPricePerGram = pricing.Round2(perGram)
		s.AvgTHCa = pricing.Round2(thcaSum / float64(len(ps)))
		s.TotalLbs = pricing.Round2(s.TotalLbs)
		stats = append(stats, s)
	}
	return stats, nil
}

// TierTotal is the stock held in one tier.
type TierTotal struct {
	Tier  QualityTier `json:"tier"`
	Count int         `json:"count"`
	Lbs   float64     `json:"lbs"`
	Value float64     `json:"value"`
}

// Summary is a snapshot of the whole inventory.
type Summary struct {
	ProductCount int         `json:"product_count"`
	TotalLbs     float64     `json:"total_lbs"`
	TotalGrams   float64     `json:"total_grams"`
	TotalValue   float64     `json:"total_value"`
	AvgTHCa      float64     `json:"avg_thca"`
	ByTier       []TierTotal `json:"by_tier"`
}

// Summarize totals stock and value across the inventory.
func Summarize(products []Product) (Summary, error) {
	totals := make(map[QualityTier]*TierTotal)
	var s Summary
	var thcaSum float64
	for _, p := range products {
		s.ProductCount++
		s.TotalLbs += p.WeightLbs
		s.TotalValue += p.Value()
		thcaSum += p.THCa
		t, ok := totals[p.Tier]
		if !ok {
			t = &TierTotal{Tier: p.Tier}
			totals[p.Tier] = t
		}
		t.Count++
		t.Lbs += p.WeightLbs
		t.Value += p.Value()
	}

	grams, err := pricing.Convert(s.TotalLbs, pricing.Pound, pricing.Gram)
	if err != nil {
		return Summary{}, err
	}
	s.TotalGrams = pricing.Round2(grams)
	s.TotalLbs = pricing.Round2(s.TotalLbs)
	s.TotalValue = pricing.Round2(s.TotalValue)
	if s.ProductCount > 0 {
		s.AvgTHCa = pricing.Round2(thcaSum / float64(s.ProductCount))
	}
	for _, tier := range orderedTiers(totals) {
		t := *totals[tier]
		t.Lbs = pricing.Round2(t.Lbs)
		t.Value = pricing.Round2(t.Value)
		s.ByTier = append(s.ByTier, t)
	}
	return s, nil
}

// ForecastLine is the projection for one product.
type ForecastLine struct {
	Name             string      `json:"name"`
	Tier             QualityTier `json:"tier"`
	ProjectedLbs     float64     `json:"projected_lbs"`
	ProjectedRevenue float64     `json:"projected_revenue"`
	// DaysOfSupply is 0 for products with no recorded sales.
	DaysOfSupply float64 `json:"days_of_supply"`
	StockLimited bool    `json:"stock_limited"`
}

// Forecast projects sales over a horizon.
type Forecast struct {
	Days          int            `json:"days"`
	GrowthPercent float64        `json:"growth_percent"`
	TotalLbs      float64        `json:"total_lbs"`
	TotalRevenue  float64        `json:"total_revenue"`
	Lines         []ForecastLine `json:"lines"`
}

// ForecastSales projects each product's weekly velocity, adjusted by
// growthPercent, over days. Projected pounds never exceed stock on hand.
// Lines are ordered by projected revenue, highest first.
func ForecastSales(products []Product, days int, growthPercent float64) (Forecast, error) {
	if days <= 0 {
		return Forecast{}, fmt.Errorf("%w: days must be positive, got %d", pricing.ErrInvalidInput, days)
	}
	if growthPercent < -100 {
		return Forecast{}, fmt.Errorf("%w: growth cannot be below -100%%", pricing.ErrInvalidInput)
	}
	f := Forecast{Days: days, GrowthPercent: growthPercent}
	factor := 1 + growthPercent/100
	for _, p := range products {
		daily := p.WeeklySalesLbs / 7 * factor
		projected := daily * float64(days)
		line := ForecastLine{Name: p.Name, Tier: p.Tier}
		if projected > p.WeightLbs {
			projected = p.WeightLbs
			line.StockLimited = true
		}
		if daily > 0 {
			line.DaysOfSupply = pricing.Round2(p.WeightLbs / daily)
		}
		revenue := projected * p.PricePerLb
		f.TotalLbs += projected
		f.TotalRevenue += revenue
		line.ProjectedLbs = pricing.Round2(projected)
		line.ProjectedRevenue = pricing.Round2(revenue)
		f.Lines = append(f.Lines, line)
	}
	sort.SliceStable(f.Lines, func(i, j int) bool {
		if f.Lines[i].ProjectedRevenue != f.Lines[j].ProjectedRevenue {
			return f.Lines[i].ProjectedRevenue > f.Lines[j].ProjectedRevenue
		}
		return f.Lines[i].Name < f.Lines[j].Name
	})
	f.TotalLbs = pricing.Round2(f.TotalLbs)
	f.TotalRevenue = pricing.Round2(f.TotalRevenue)
	return f, nil
}

func orderedTiers[T any](m map[QualityTier]T) []QualityTier {
	tiers := make([]QualityTier, 0, len(m))
	for t := range m {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].Rank() != tiers[j].Rank() {
			return tiers[i].Rank() < tiers[j].Rank()
		}
		return tiers[i] < tiers[j]
	})
	return tiers
}
