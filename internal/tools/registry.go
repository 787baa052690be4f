package tools

import "github.com/dileep-u-k/inventory-agent/internal/catalog"

// NewInventoryToolManager registers every inventory tool over store.
func NewInventoryToolManager(store catalog.Store) *ToolManager {
	manager := NewToolManager()
	manager.Register(NewBulkDiscountTool(store))
	manager.Register(NewConversionTool())
	manager.Register(NewPricingAnalysisTool(store))
	manager.Register(NewMenuTool(store))
	manager.Register(NewInventorySummaryTool(store))
	manager.Register(NewSalesForecastTool(store))
	return manager
}
