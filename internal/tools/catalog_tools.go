package tools

import (
	"context"
	"fmt"

	"github.com/dileep-u-k/inventory-agent/internal/catalog"
	"github.com/dileep-u-k/inventory-agent/internal/pricing"
)

func tierNames() []string {
	tiers := catalog.QualityTiers()
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = string(t)
	}
	return names
}

// loadProducts lists the store and narrows it to tier when one is given.
// A non-empty message means the tier was not recognised.
func loadProducts(ctx context.Context, store catalog.Store, tier string) ([]catalog.Product, string, error) {
	products, err := store.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list products: %w", err)
	}
	if tier == "" {
		return products, "", nil
	}
	qt, err := catalog.ParseQualityTier(tier)
	if err != nil {
		return nil, errorResult(err), nil
	}
	return catalog.FilterByTier(products, qt), "", nil
}

// --- Pricing analysis ---

// PricingAnalysisTool reports price and potency statistics per quality tier.
type PricingAnalysisTool struct {
	store catalog.Store
}

var _ ToolExecutor = (*PricingAnalysisTool)(nil)

func NewPricingAnalysisTool(store catalog.Store) *PricingAnalysisTool {
	return &PricingAnalysisTool{store: store}
}

func (t *PricingAnalysisTool) Definition() Tool {
	return NewFunctionTool(
		"get_pricing_analysis",
		"Analyze catalog pricing by quality tier: product count, min/max/average price per pound, average price per gram and average THCa. Also lists the volume discount tiers.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"tier": {
					Type:        "string",
					Description: "Only analyze this quality tier.",
					Enum:        tierNames(),
				},
			},
		},
	)
}

type pricingAnalysisArgs struct {
	Tier string `json:"tier"`
}

type pricingAnalysisResult struct {
	Tiers           []catalog.TierStat `json:"tiers"`
	VolumeDiscounts []pricing.Tier     `json:"volume_discounts"`
}

func (t *PricingAnalysisTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args pricingAnalysisArgs
	if err := decodeArguments("get_pricing_analysis", arguments, &args); err != nil {
		return "", err
	}
	products, msg, err := loadProducts(ctx, t.store, args.Tier)
	if err != nil || msg != "" {
		return msg, err
	}
	stats, err := catalog.TierStats(products)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(pricingAnalysisResult{Tiers: stats, VolumeDiscounts: pricing.Tiers()})
}

// --- Menu ---

// MenuTool renders the price menu.
type MenuTool struct {
	store catalog.Store
}

var _ ToolExecutor = (*MenuTool)(nil)

func NewMenuTool(store catalog.Store) *MenuTool {
	return &MenuTool{store: store}
}

func (t *MenuTool) Definition() Tool {
	return NewFunctionTool(
		"generate_menu",
		"Generate a text price menu grouped by quality tier (Exotic first), showing strain, THCa, price per pound and per ounce, and stock.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"tier": {
					Type:        "string",
					Description: "Only include this quality tier.",
					Enum:        tierNames(),
				},
				"sort_by": {
					Type:        "string",
					Description: "Order inside each tier, highest first. Defaults to price.",
					Enum:        []string{string(catalog.SortByPrice), string(catalog.SortByTHCa)},
				},
			},
		},
	)
}

type menuArgs struct {
	Tier   string `json:"tier"`
	SortBy string `json:"sort_by"`
}

func (t *MenuTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args menuArgs
	if err := decodeArguments("generate_menu", arguments, &args); err != nil {
		return "", err
	}
	key, err := catalog.ParseSortKey(args.SortBy)
	if err != nil {
		return errorResult(err), nil
	}
	products, msg, err := loadProducts(ctx, t.store, args.Tier)
	if err != nil || msg != "" {
		return msg, err
	}
	menu, err := catalog.RenderMenu(products, key)
	if err != nil {
		return errorResult(err), nil
	}
	return menu, nil
}

// --- Inventory summary ---

// InventorySummaryTool totals stock and value across the catalog.
type InventorySummaryTool struct {
	store catalog.Store
}

var _ ToolExecutor = (*InventorySummaryTool)(nil)

func NewInventorySummaryTool(store catalog.Store) *InventorySummaryTool {
	return &InventorySummaryTool{store: store}
}

func (t *InventorySummaryTool) Definition() Tool {
	return NewFunctionTool(
		"get_inventory_summary",
		"Summarize the inventory: number of products, total pounds and grams on hand, total value at list price, average THCa, and totals per quality tier.",
		emptyParameters(),
	)
}

func (t *InventorySummaryTool) Execute(ctx context.Context, _ string) (string, error) {
	products, err := t.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list products: %w", err)
	}
	summary, err := catalog.Summarize(products)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(summary)
}

// --- Sales forecast ---

// SalesForecastTool projects sales from each product's weekly velocity.
type SalesForecastTool struct {
	store catalog.Store
}

var _ ToolExecutor = (*SalesForecastTool)(nil)

func NewSalesForecastTool(store catalog.Store) *SalesForecastTool {
	return &SalesForecastTool{store: store}
}

func (t *SalesForecastTool) Definition() Tool {
	return NewFunctionTool(
		"forecast_sales",
		"Forecast sales over a number of days from each product's average weekly sales, optionally adjusted by a growth percentage. Projections are capped by stock on hand; also reports days of supply.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"days": {
					Type:        "integer",
					Description: "Forecast horizon in days, 1 to 365.",
				},
				"growth_percent": {
					Type:        "number",
					Description: "Expected change in sales velocity in percent, e.g. 10 or -20. Defaults to 0.",
				},
				"tier": {
					Type:        "string",
					Description: "Only forecast this quality tier.",
					Enum:        tierNames(),
				},
			},
			Required: []string{"days"},
		},
	)
}

type salesForecastArgs struct {
	Days          int     `json:"days" validate:"required,min=1,max=365"`
	GrowthPercent float64 `json:"growth_percent" validate:"gte=-100,lte=1000"`
	Tier          string  `json:"tier"`
}

func (t *SalesForecastTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args salesForecastArgs
	if err := decodeArguments("forecast_sales", arguments, &args); err != nil {
		return "", err
	}
	if msg := validationMessage(args); msg != "" {
		return msg, nil
	}
	products, msg, err := loadProducts(ctx, t.store, args.Tier)
	if err != nil || msg != "" {
		return msg, err
	}
	forecast, err := catalog.ForecastSales(products, args.Days, args.GrowthPercent)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(forecast)
}
