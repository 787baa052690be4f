package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProducts_Valid(t *testing.T) {
	products := SeedProducts()
	require.Len(t, products, 10)
	for _, p := range products {
		assert.NoError(t, p.Validate(), p.Name)
	}

	// Callers get their own copy.
	products[0].Name = "changed"
	assert.Equal(t, "Gelato 41", SeedProducts()[0].Name)
}

func TestProduct_Validate(t *testing.T) {
	base := Product{Name: "X", Tier: TierMids, WeightLbs: 1, PricePerLb: 100, THCa: 20}
	require.NoError(t, base.Validate())

	bad := []func(p *Product){
		func(p *Product) { p.Name = " " },
		func(p *Product) { p.Tier = "Top" },
		func(p *Product) { p.WeightLbs = -1 },
		func(p *Product) { p.PricePerLb = 0 },
		func(p *Product) { p.THCa = 120 },
		func(p *Product) { p.WeeklySalesLbs = -2 },
	}
	for i, mutate := range bad {
		p := base
		mutate(&p)
		assert.Error(t, p.Validate(), "case %d", i)
	}
}

func TestParseQualityTier(t *testing.T) {
	tier, err := ParseQualityTier("exotic")
	require.NoError(t, err)
	assert.Equal(t, TierExotic, tier)

	_, err = ParseQualityTier("bottom shelf")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewSeedStore()

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 10)

	p, err := s.Get(ctx, "  blue DREAM ")
	require.NoError(t, err)
	assert.Equal(t, "Blue Dream", p.Name)

	_, err = s.Get(ctx, "Moon Rocks")
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, s.Put(Product{Name: "Moon Rocks", Tier: TierExotic, WeightLbs: 2, PricePerLb: 3000, THCa: 40}))
	p, err = s.Get(ctx, "moon rocks")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, p.PricePerLb)

	assert.Error(t, s.Put(Product{Name: "Broken"}))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`products:
  - name: Lemon Cherry Gelato
    strain: hybrid
    tier: Exotic
    weight_lbs: 12
    price_per_lb: 2500
    thca: 32.5
    weekly_sales_lbs: 2
`), 0o644))

	products, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, TierExotic, products[0].Tier)
	assert.Equal(t, 32.5, products[0].THCa)

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte(`products:
  - {name: A, tier: Mids, weight_lbs: 1, price_per_lb: 10, thca: 10}
  - {name: A, tier: Mids, weight_lbs: 1, price_per_lb: 10, thca: 10}
`), 0o644))
	_, err = LoadFile(dup)
	assert.ErrorContains(t, err, "duplicate")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFileDuplicateIgnoresCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`products:
  - {name: Blue Dream, tier: Premium, weight_lbs: 1, price_per_lb: 10, thca: 10}
  - {name: " blue dream", tier: Premium, weight_lbs: 2, price_per_lb: 20, thca: 10}
`), 0o644))
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "duplicate")
}

func TestNewMemoryStoreValidates(t *testing.T) {
	_, err := NewMemoryStore([]Product{{Name: "Bad Tier", Tier: "Legendary", WeightLbs: 1, PricePerLb: 10}})
	assert.Error(t, err)

	_, err = NewMemoryStore([]Product{{Name: "Free", Tier: TierMids, WeightLbs: 1, PricePerLb: 0}})
	assert.Error(t, err)

	s, err := NewMemoryStore(SeedProducts())
	require.NoError(t, err)
	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(SeedProducts()))
}

func TestSortForMenu(t *testing.T) {
	sorted := SortForMenu(SeedProducts(), SortByPrice)
	names := make([]string, len(sorted))
	for i, p := range sorted {
		names[i] = p.Name
	}
	assert.Equal(t, []string{
		"Runtz", "Gelato 41", "Zkittlez",
		"Wedding Cake", "OG Kush", "Blue Dream",
		"Sour Diesel", "Northern Lights",
		"Purple Punch", "Green Crack",
	}, names)

	byTHCa := SortForMenu(FilterByTier(SeedProducts(), TierPremium), SortByTHCa)
	require.Len(t, byTHCa, 3)
	assert.Equal(t, "Wedding Cake", byTHCa[0].Name)
	assert.Equal(t, "OG Kush", byTHCa[1].Name)
	assert.Equal(t, "Blue Dream", byTHCa[2].Name)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByPrice, k)

	k, err = ParseSortKey("THCa")
	require.NoError(t, err)
	assert.Equal(t, SortByTHCa, k)

	_, err = ParseSortKey("name")
	assert.Error(t, err)
}

func TestRenderMenu(t *testing.T) {
	menu, err := RenderMenu(SeedProducts(), SortByPrice)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(menu, "== EXOTIC =="))
	assert.Less(t, strings.Index(menu, "== PREMIUM =="), strings.Index(menu, "== MIDS =="))
	assert.Contains(t, menu, "$2400.00/lb")
	// 16 ounces to the pound
	assert.Contains(t, menu, "$100.00/oz")

	empty, err := RenderMenu(nil, SortByPrice)
	require.NoError(t, err)
	assert.Equal(t, "No products available.", empty)
}

func TestTierStats(t *testing.T) {
	stats, err := TierStats(SeedProducts())
	require.NoError(t, err)
	require.Len(t, stats, 4)

	exotic := stats[0]
	assert.Equal(t, TierExotic, exotic.Tier)
	assert.Equal(t, 3, exotic.Count)
	assert.Equal(t, 2100.0, exotic.MinPricePerLb)
	assert.Equal(t, 2400.0, exotic.MaxPricePerLb)
	assert.InDelta(t, 2233.33, exotic.AvgPricePerLb, 0.001)
	assert.InDelta(t, 29.8, exotic.AvgTHCa, 0.001)
	assert.InDelta(t, 87.5, exotic.TotalLbs, 0.001)
	// 2233.33 $/lb over 453.592 g
	assert.InDelta(t, 4.92, exotic.AvgPricePerGram, 0.001)

	assert.Equal(t, TierSmalls, stats[3].Tier)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(SeedProducts())
	require.NoError(t, err)
	assert.Equal(t, 10, s.ProductCount)
	assert.InDelta(t, 687.0, s.TotalLbs, 0.001)
	assert.InDelta(t, 735525.0, s.TotalValue, 0.001)
	assert.InDelta(t, 311617.7, s.TotalGrams, 0.01)
	assert.InDelta(t, 23.77, s.AvgTHCa, 0.001)
	require.Len(t, s.ByTier, 4)
	assert.Equal(t, TierTotal{Tier: TierMids, Count: 2, Lbs: 208, Value: 182800}, s.ByTier[2])

	empty, err := Summarize(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.ProductCount)
	assert.Empty(t, empty.ByTier)
}

func TestForecastSales(t *testing.T) {
	f, err := ForecastSales(SeedProducts(), 7, 0)
	require.NoError(t, err)
	require.Len(t, f.Lines, 10)
	assert.InDelta(t, 102150.0, f.TotalRevenue, 0.01)
	assert.Equal(t, "Blue Dream", f.Lines[0].Name)
	assert.InDelta(t, 14400.0, f.Lines[0].ProjectedRevenue, 0.01)

	for i := 1; i < len(f.Lines); i++ {
		assert.GreaterOrEqual(t, f.Lines[i-1].ProjectedRevenue, f.Lines[i].ProjectedRevenue)
	}
}

func TestForecastSales_CappedByStock(t *testing.T) {
	products := []Product{{Name: "Short", Tier: TierMids, WeightLbs: 3, PricePerLb: 100, THCa: 20, WeeklySalesLbs: 7}}
	f, err := ForecastSales(products, 30, 50)
	require.NoError(t, err)
	require.Len(t, f.Lines, 1)
	assert.True(t, f.Lines[0].StockLimited)
	assert.Equal(t, 3.0, f.Lines[0].ProjectedLbs)
	assert.Equal(t, 300.0, f.Lines[0].ProjectedRevenue)
	// 1.5 lbs a day
	assert.Equal(t, 2.0, f.Lines[0].DaysOfSupply)
}

func TestForecastSales_Errors(t *testing.T) {
	_, err := ForecastSales(SeedProducts(), 0, 0)
	assert.Error(t, err)
	_, err = ForecastSales(SeedProducts(), 10, -150)
	assert.Error(t, err)
}
